package enums

// FoodItemStatus tracks where a surplus listing sits in the allocation flow.
type FoodItemStatus string

const (
	FoodItemStatusUnselected FoodItemStatus = "Unselected"
	FoodItemStatusSelected   FoodItemStatus = "Selected"
	FoodItemStatusCompleted  FoodItemStatus = "Completed"
)

var validFoodItemStatuses = []FoodItemStatus{
	FoodItemStatusUnselected,
	FoodItemStatusSelected,
	FoodItemStatusCompleted,
}

// String implements fmt.Stringer.
func (s FoodItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known FoodItemStatus.
func (s FoodItemStatus) IsValid() bool {
	for _, candidate := range validFoodItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}
