package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) authMiddleware(staffOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.jwtMiddleware(next, staffOnly)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.authMiddleware(false))
	staffMiddleware := standardMiddleware.Append(app.authMiddleware(true))

	mux := pat.New()

	// Auth
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Get("/auth/microsoft/login", standardMiddleware.ThenFunc(app.userHandler.LoginMicrosoft))
	mux.Get("/auth/microsoft/callback", standardMiddleware.ThenFunc(app.userHandler.CallbackMicrosoft))

	// Users
	mux.Get("/user/validate", authMiddleware.ThenFunc(app.userHandler.Validate))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.Me))
	mux.Get("/user", staffMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Del("/user/:id", staffMiddleware.ThenFunc(app.userHandler.DeleteUser))

	// Items
	mux.Post("/item", authMiddleware.ThenFunc(app.itemHandler.CreateItem))
	mux.Get("/item/lost", standardMiddleware.ThenFunc(app.itemHandler.GetLostItems))
	mux.Get("/item/found", standardMiddleware.ThenFunc(app.itemHandler.GetFoundItems))
	mux.Get("/item/my/lost", authMiddleware.ThenFunc(app.itemHandler.GetMyLostItems))
	mux.Get("/item/my/found", authMiddleware.ThenFunc(app.itemHandler.GetMyFoundItems))
	mux.Get("/item/:id/matches", authMiddleware.ThenFunc(app.matchHandler.GetMatchesForItem))
	mux.Get("/item/:id/images", standardMiddleware.ThenFunc(app.itemImageHandler.GetImagesByItemID))
	mux.Post("/item/:id/images", authMiddleware.ThenFunc(app.itemImageHandler.UploadImage))
	mux.Get("/item/:id", standardMiddleware.ThenFunc(app.itemHandler.GetItemByID))
	mux.Put("/item/:id", authMiddleware.ThenFunc(app.itemHandler.UpdateItem))
	mux.Del("/item/:id", authMiddleware.ThenFunc(app.itemHandler.DeleteItem))
	mux.Del("/images/:id", authMiddleware.ThenFunc(app.itemImageHandler.DeleteImage))

	// Matches
	mux.Del("/matches", staffMiddleware.ThenFunc(app.matchHandler.PurgeMatches))

	// Categories
	mux.Post("/category", staffMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/category", standardMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Get("/category/:id", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/category/:id", staffMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/category/:id", staffMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	// Locations
	mux.Post("/location", staffMiddleware.ThenFunc(app.locationHandler.CreateLocation))
	mux.Get("/location", standardMiddleware.ThenFunc(app.locationHandler.GetAllLocations))
	mux.Get("/location/:id", standardMiddleware.ThenFunc(app.locationHandler.GetLocationByID))
	mux.Put("/location/:id", staffMiddleware.ThenFunc(app.locationHandler.UpdateLocation))
	mux.Del("/location/:id", staffMiddleware.ThenFunc(app.locationHandler.DeleteLocation))

	// Colors
	mux.Post("/color", staffMiddleware.ThenFunc(app.colorHandler.CreateColor))
	mux.Get("/color", standardMiddleware.ThenFunc(app.colorHandler.GetAllColors))
	mux.Get("/color/:id", standardMiddleware.ThenFunc(app.colorHandler.GetColorByID))
	mux.Put("/color/:id", staffMiddleware.ThenFunc(app.colorHandler.UpdateColor))
	mux.Del("/color/:id", staffMiddleware.ThenFunc(app.colorHandler.DeleteColor))

	// Brands
	mux.Post("/brand", staffMiddleware.ThenFunc(app.brandHandler.CreateBrand))
	mux.Get("/brand", standardMiddleware.ThenFunc(app.brandHandler.GetAllBrands))
	mux.Get("/brand/:id", standardMiddleware.ThenFunc(app.brandHandler.GetBrandByID))
	mux.Put("/brand/:id", staffMiddleware.ThenFunc(app.brandHandler.UpdateBrand))
	mux.Del("/brand/:id", staffMiddleware.ThenFunc(app.brandHandler.DeleteBrand))

	// Chats
	mux.Post("/api/chats", authMiddleware.ThenFunc(app.chatHandler.CreateChat))
	mux.Get("/api/chats", authMiddleware.ThenFunc(app.chatHandler.GetChats))
	mux.Get("/api/chats/:id", authMiddleware.ThenFunc(app.chatHandler.GetChatByID))
	mux.Del("/api/chats/:id", authMiddleware.ThenFunc(app.chatHandler.DeleteChat))
	mux.Post("/api/messages", authMiddleware.ThenFunc(app.chatHandler.SendMessage))
	mux.Get("/api/messages/:chatId", authMiddleware.ThenFunc(app.chatHandler.GetMessages))
	mux.Del("/api/messages/:messageId", authMiddleware.ThenFunc(app.chatHandler.DeleteMessage))

	// Push notification tokens
	mux.Post("/notify/token", authMiddleware.ThenFunc(app.notifyTokenHandler.RegisterToken))
	mux.Del("/notify/token/:token", authMiddleware.ThenFunc(app.notifyTokenHandler.RemoveToken))

	// Chat websocket
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	return mux
}
