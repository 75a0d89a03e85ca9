package workout

// Category is the closed set of exercise categories. The reference UI
// used free-form strings with a hard-coded color map and silently fell
// back to "Other"; here unknown categories are rejected at the API
// boundary instead.
type Category string

const (
	CategoryStrength    Category = "Strength"
	CategoryCardio      Category = "Cardio"
	CategoryPlyometrics Category = "Plyometrics"
	CategoryFlexibility Category = "Flexibility"
	CategoryOther       Category = "Other"
)

var categories = map[Category]bool{
	CategoryStrength:    true,
	CategoryCardio:      true,
	CategoryPlyometrics: true,
	CategoryFlexibility: true,
	CategoryOther:       true,
}

// CategoryColors maps each category to its display color.
var CategoryColors = map[Category]string{
	CategoryStrength:    "#3b82f6",
	CategoryCardio:      "#ef4444",
	CategoryPlyometrics: "#22c55e",
	CategoryFlexibility: "#a855f7",
	CategoryOther:       "#6b7280",
}

func (c Category) Valid() bool {
	return categories[c]
}

func Categories() []Category {
	return []Category{
		CategoryStrength,
		CategoryCardio,
		CategoryPlyometrics,
		CategoryFlexibility,
		CategoryOther,
	}
}
