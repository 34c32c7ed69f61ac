package entity

// DefaultCategories returns the fixed category set written into a user's
// namespace the first time their categories collection is found empty.
// Salary is the single income-kind category; budgets never target it.
func DefaultCategories() []*Category {
	return []*Category{
		NewCategory("Groceries", IconShoppingCart, "hsl(231, 48%, 48%)", CategoryKindExpense),
		NewCategory("Salary", IconLandmark, "hsl(174, 100%, 29.4%)", CategoryKindIncome),
		NewCategory("Dining Out", IconUtensils, "hsl(25, 80%, 55%)", CategoryKindExpense),
		NewCategory("Transport", IconCar, "hsl(280, 65%, 60%)", CategoryKindExpense),
		NewCategory("Entertainment", IconTicket, "hsl(50, 75%, 55%)", CategoryKindExpense),
		NewCategory("Utilities", IconLightbulb, "hsl(197, 71%, 73%)", CategoryKindExpense),
		NewCategory("Rent/Mortgage", IconHome, "hsl(217, 91%, 60%)", CategoryKindExpense),
		NewCategory("Shopping", IconShoppingBag, "hsl(347, 77%, 66%)", CategoryKindExpense),
		NewCategory("Healthcare", IconHeartPulse, "hsl(0, 72%, 61%)", CategoryKindExpense),
		NewCategory("Education", IconBookOpen, "hsl(173, 80%, 40%)", CategoryKindExpense),
		NewCategory("Personal Care", IconPalette, "hsl(300, 60%, 70%)", CategoryKindExpense),
		NewCategory("Fitness", IconDumbbell, "hsl(120, 50%, 60%)", CategoryKindExpense),
		NewCategory("Gifts", IconGift, "hsl(330, 70%, 75%)", CategoryKindExpense),
		NewCategory("Travel", IconPlane, "hsl(200, 80%, 65%)", CategoryKindExpense),
		NewCategory("Subscriptions", IconRepeat, "hsl(260, 55%, 65%)", CategoryKindExpense),
		NewCategory("Insurance", IconShieldCheck, "hsl(220, 40%, 55%)", CategoryKindExpense),
		NewCategory("Investments", IconTrendingUp, "hsl(150, 65%, 45%)", CategoryKindExpense),
		NewCategory("Pets", IconDog, "hsl(40, 70%, 60%)", CategoryKindExpense),
		NewCategory("Kids", IconBaby, "hsl(180, 60%, 75%)", CategoryKindExpense),
		NewCategory("Charity", IconHelpingHand, "hsl(270, 50%, 70%)", CategoryKindExpense),
		NewCategory("Home Improvement", IconWrench, "hsl(30, 60%, 50%)", CategoryKindExpense),
		NewCategory("Electronics", IconSmartphone, "hsl(240, 30%, 65%)", CategoryKindExpense),
	}
}
