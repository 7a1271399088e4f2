package helpers

import "weeat/models"

// ApplyRating folds one 1-5 score into a running average. With no prior
// rating the score becomes the average. The returned count only ever grows.
func ApplyRating(rating *float64, ratingCount *int, score int) (*float64, *int) {
	if rating == nil || ratingCount == nil || *ratingCount < 1 {
		newRating := float64(score)
		newCount := 1
		return &newRating, &newCount
	}
	newCount := *ratingCount + 1
	newRating := (*rating*float64(*ratingCount) + float64(score)) / float64(newCount)
	return &newRating, &newCount
}

// RecordRating registers one user's rating on the order, guarding against
// double submission. Re-averaging the same scores would double-count, so a
// second submission for the same user id is rejected outright, never
// silently folded in. Dish scores must refer to dishes somebody actually
// ordered.
//
// The order is only modified when nil is returned; folding the scores into
// the restaurant and dish aggregates is the caller's job.
func RecordRating(order *models.GroupOrder, rating models.Rating) error {
	if _, ok := order.Ratings[rating.User_id]; ok {
		return ErrAlreadyRated
	}

	if len(rating.Dish_ratings) > 0 {
		ordered := map[string]bool{}
		for _, participant := range order.Participants {
			for _, item := range participant.Items {
				ordered[item.Dish.Dish_id] = true
			}
		}
		for dishID := range rating.Dish_ratings {
			if !ordered[dishID] {
				return ErrDishNotInOrder
			}
		}
	}

	if order.Ratings == nil {
		order.Ratings = map[string]models.Rating{}
	}
	order.Ratings[rating.User_id] = rating
	return nil
}
