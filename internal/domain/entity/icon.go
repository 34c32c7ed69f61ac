package entity

// CategoryIcon is a symbolic icon identifier from the fixed icon set supported
// by the UI. The core never renders icons; it only validates that a category
// references a known identifier.
type CategoryIcon string

const (
	IconShoppingCart CategoryIcon = "ShoppingCart"
	IconLandmark     CategoryIcon = "Landmark"
	IconUtensils     CategoryIcon = "Utensils"
	IconCar          CategoryIcon = "Car"
	IconTicket       CategoryIcon = "Ticket"
	IconLightbulb    CategoryIcon = "Lightbulb"
	IconHome         CategoryIcon = "Home"
	IconShoppingBag  CategoryIcon = "ShoppingBag"
	IconHeartPulse   CategoryIcon = "HeartPulse"
	IconBookOpen     CategoryIcon = "BookOpen"
	IconPalette      CategoryIcon = "Palette"
	IconDumbbell     CategoryIcon = "Dumbbell"
	IconGift         CategoryIcon = "Gift"
	IconPlane        CategoryIcon = "Plane"
	IconRepeat       CategoryIcon = "Repeat"
	IconShieldCheck  CategoryIcon = "ShieldCheck"
	IconTrendingUp   CategoryIcon = "TrendingUp"
	IconDog          CategoryIcon = "Dog"
	IconBaby         CategoryIcon = "Baby"
	IconHelpingHand  CategoryIcon = "HelpingHand"
	IconWrench       CategoryIcon = "Wrench"
	IconSmartphone   CategoryIcon = "Smartphone"
	IconTag          CategoryIcon = "Tag"
)

var supportedIcons = map[CategoryIcon]struct{}{
	IconShoppingCart: {}, IconLandmark: {}, IconUtensils: {}, IconCar: {},
	IconTicket: {}, IconLightbulb: {}, IconHome: {}, IconShoppingBag: {},
	IconHeartPulse: {}, IconBookOpen: {}, IconPalette: {}, IconDumbbell: {},
	IconGift: {}, IconPlane: {}, IconRepeat: {}, IconShieldCheck: {},
	IconTrendingUp: {}, IconDog: {}, IconBaby: {}, IconHelpingHand: {},
	IconWrench: {}, IconSmartphone: {}, IconTag: {},
}

// IsValid reports whether the icon identifier belongs to the supported set.
func (i CategoryIcon) IsValid() bool {
	_, ok := supportedIcons[i]
	return ok
}
