// Package session owns the per-user synchronizer: local mirrors of the four
// remote collections, the live subscriptions that feed them, and the derived
// aggregate maintenance that keeps budget spend rollups and the summary
// consistent with every mutation.
package session

// Store layout: every signed-in user owns one namespace in the document tree.
//
//	users/<uid>/transactions/<id>
//	users/<uid>/categories/<id>
//	users/<uid>/budgetGoals/<id>
//	users/<uid>/summary

func UserPath(userID string) string         { return "users/" + userID }
func TransactionsPath(userID string) string { return UserPath(userID) + "/transactions" }
func CategoriesPath(userID string) string   { return UserPath(userID) + "/categories" }
func BudgetGoalsPath(userID string) string  { return UserPath(userID) + "/budgetGoals" }
func SummaryPath(userID string) string      { return UserPath(userID) + "/summary" }

func TransactionPath(userID, id string) string { return TransactionsPath(userID) + "/" + id }
func CategoryPath(userID, id string) string    { return CategoriesPath(userID) + "/" + id }
func BudgetGoalPath(userID, id string) string  { return BudgetGoalsPath(userID) + "/" + id }
