package entity

import "image/color"

// DefectCategory groups defect classes for SCA-style grading.
type DefectCategory string

const (
	CategoryPrimary   DefectCategory = "primary"   // category 1, weighs heaviest in grading
	CategorySecondary DefectCategory = "secondary" // category 2
	CategoryNone      DefectCategory = "none"      // normal beans, not a defect
)

// LabelNormal is the taxonomy label for non-defective beans.
const LabelNormal = "normal"

// DefectClass is one entry of the fixed defect taxonomy: the class label the
// detector was trained on, its grading category, display color and bilingual
// display names.
type DefectClass struct {
	Label    string
	Category DefectCategory
	Color    color.RGBA
	NameEN   string
	NameTH   string
}

// colorUnknown is the fallback display color for labels outside the taxonomy.
var colorUnknown = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// classes holds the full taxonomy in training-label order: normal first,
// then the 7 primary (category 1) classes, then the 12 secondary (category 2)
// classes. The table is read-only after package init.
var classes = []DefectClass{
	{Label: LabelNormal, Category: CategoryNone, Color: color.RGBA{0, 128, 0, 255}, NameEN: "Normal", NameTH: "ปกติ"},

	// Category 1 (primary): red shades.
	{Label: "full_black", Category: CategoryPrimary, Color: color.RGBA{255, 0, 0, 255}, NameEN: "Full Black", NameTH: "ดำเต็มเมล็ด"},
	{Label: "full_sour", Category: CategoryPrimary, Color: color.RGBA{220, 20, 60, 255}, NameEN: "Full Sour", NameTH: "เปรี้ยวเต็มเมล็ด"},
	{Label: "pod_cherry", Category: CategoryPrimary, Color: color.RGBA{178, 34, 34, 255}, NameEN: "Pod Cherry", NameTH: "เชอร์รี่ติดฝัก"},
	{Label: "large_stones", Category: CategoryPrimary, Color: color.RGBA{139, 0, 0, 255}, NameEN: "Large Stones", NameTH: "หินใหญ่"},
	{Label: "medium_stones", Category: CategoryPrimary, Color: color.RGBA{165, 42, 42, 255}, NameEN: "Medium Stones", NameTH: "หินกลาง"},
	{Label: "large_sticks", Category: CategoryPrimary, Color: color.RGBA{128, 0, 0, 255}, NameEN: "Large Sticks", NameTH: "กิ่งไม้ใหญ่"},
	{Label: "medium_sticks", Category: CategoryPrimary, Color: color.RGBA{160, 82, 45, 255}, NameEN: "Medium Sticks", NameTH: "กิ่งไม้กลาง"},

	// Category 2 (secondary): orange/yellow shades.
	{Label: "partial_black", Category: CategorySecondary, Color: color.RGBA{255, 140, 0, 255}, NameEN: "Partial Black", NameTH: "ดำบางส่วน"},
	{Label: "partial_sour", Category: CategorySecondary, Color: color.RGBA{255, 165, 0, 255}, NameEN: "Partial Sour", NameTH: "เปรี้ยวบางส่วน"},
	{Label: "parchment", Category: CategorySecondary, Color: color.RGBA{255, 215, 0, 255}, NameEN: "Parchment", NameTH: "กะลา"},
	{Label: "floater", Category: CategorySecondary, Color: color.RGBA{255, 255, 0, 255}, NameEN: "Floater", NameTH: "ลอย"},
	{Label: "immature", Category: CategorySecondary, Color: color.RGBA{154, 205, 50, 255}, NameEN: "Immature", NameTH: "ไม่สุก"},
	{Label: "withered", Category: CategorySecondary, Color: color.RGBA{189, 183, 107, 255}, NameEN: "Withered", NameTH: "เหี่ยว"},
	{Label: "shell", Category: CategorySecondary, Color: color.RGBA{240, 230, 140, 255}, NameEN: "Shell", NameTH: "เปลือก"},
	{Label: "broken", Category: CategorySecondary, Color: color.RGBA{255, 127, 80, 255}, NameEN: "Broken", NameTH: "แตก"},
	{Label: "chipped", Category: CategorySecondary, Color: color.RGBA{255, 99, 71, 255}, NameEN: "Chipped", NameTH: "บิ่น"},
	{Label: "cut", Category: CategorySecondary, Color: color.RGBA{250, 128, 114, 255}, NameEN: "Cut", NameTH: "ตัด"},
	{Label: "insect_damage", Category: CategorySecondary, Color: color.RGBA{233, 150, 122, 255}, NameEN: "Insect Damage", NameTH: "แมลงกัด"},
	{Label: "husk", Category: CategorySecondary, Color: color.RGBA{244, 164, 96, 255}, NameEN: "Husk", NameTH: "เปลือกแห้ง"},
}

// classByLabel indexes the taxonomy for lookups.
var classByLabel = func() map[string]DefectClass {
	m := make(map[string]DefectClass, len(classes))
	for _, c := range classes {
		m[c.Label] = c
	}
	return m
}()

// defectLabels caches the 19 non-normal labels in taxonomy order.
var defectLabels = func() []string {
	labels := make([]string, 0, len(classes)-1)
	for _, c := range classes {
		if c.Label != LabelNormal {
			labels = append(labels, c.Label)
		}
	}
	return labels
}()

// Classes returns the full taxonomy in training-label order.
func Classes() []DefectClass {
	out := make([]DefectClass, len(classes))
	copy(out, classes)
	return out
}

// DefectLabels returns the 19 non-normal taxonomy labels in taxonomy order
// (category 1 first, then category 2).
func DefectLabels() []string {
	out := make([]string, len(defectLabels))
	copy(out, defectLabels)
	return out
}

// ClassByLabel looks up a taxonomy entry by its class label.
func ClassByLabel(label string) (DefectClass, bool) {
	c, ok := classByLabel[label]
	return c, ok
}

// ColorFor returns the display color for a class label, falling back to a
// neutral gray for labels outside the taxonomy.
func ColorFor(label string) color.RGBA {
	if c, ok := classByLabel[label]; ok {
		return c.Color
	}
	return colorUnknown
}

// NameThaiFor returns the Thai display name for a class label, or the label
// itself when it is not part of the taxonomy.
func NameThaiFor(label string) string {
	if c, ok := classByLabel[label]; ok {
		return c.NameTH
	}
	return label
}
