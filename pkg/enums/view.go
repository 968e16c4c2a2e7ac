package enums

import "fmt"

// View enumerates the top-level storefront screens.
type View string

const (
	ViewHome          View = "HOME"
	ViewShop          View = "SHOP"
	ViewProductDetail View = "PRODUCT_DETAIL"
	ViewAbout         View = "ABOUT"
	ViewAIStudio      View = "AI_STUDIO"
)

var validViews = []View{
	ViewHome,
	ViewShop,
	ViewProductDetail,
	ViewAbout,
	ViewAIStudio,
}

// String implements fmt.Stringer.
func (v View) String() string {
	return string(v)
}

// IsValid reports whether the value is a known View.
func (v View) IsValid() bool {
	for _, candidate := range validViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseView converts raw input into a View.
func ParseView(value string) (View, error) {
	for _, candidate := range validViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view %q", value)
}
