package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// API groups the handlers mounted under /api
type API struct {
	Restaurants *RestaurantHandler
	FoodItems   *FoodItemHandler
	Pickups     *PickupHandler
	Impact      *ImpactHandler
	Profiles    *ProfileHandler
}

// Mount registers the /api routes on r. Browsing and impact are public;
// everything acting on behalf of a user goes through requireAuth.
func (a *API) Mount(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/restaurants", a.Restaurants.Search)
		r.Get("/restaurants/{restaurantId}", a.Restaurants.Get)
		r.Get("/restaurants/{restaurantId}/food-items", a.FoodItems.List)
		r.Get("/impact", a.Impact.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			// Restaurant owner endpoints
			r.Post("/restaurants", a.Restaurants.Register)
			r.Get("/restaurants/mine", a.Restaurants.GetMine)
			r.Put("/restaurants/{restaurantId}", a.Restaurants.Update)
			r.Get("/restaurants/{restaurantId}/stats", a.Restaurants.Stats)
			r.Get("/restaurants/{restaurantId}/pickups", a.Pickups.ListForRestaurant)
			r.Post("/restaurants/{restaurantId}/food-items", a.FoodItems.Create)
			r.Put("/food-items/{foodItemId}", a.FoodItems.Update)
			r.Delete("/food-items/{foodItemId}", a.FoodItems.Delete)

			// Reservations
			r.Post("/pickups", a.Pickups.Reserve)
			r.Get("/pickups", a.Pickups.ListMine)
			r.Patch("/pickups/{pickupId}/status", a.Pickups.UpdateStatus)

			r.Get("/profile", a.Profiles.Get)
			r.Put("/profile", a.Profiles.Update)
		})
	})
}
