package delivery

import (
	"math"
	"strings"

	"dorm-delivery/internal/entities"
)

func isValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

func isValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}

func isValidParcelType(p entities.ParcelType) bool {
	switch p {
	case entities.ParcelTypeParcel, entities.ParcelTypeCanteen:
		return true
	default:
		return false
	}
}
