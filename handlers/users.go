package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kayceeDev/altschooltestingBE/appctx"
	"github.com/kayceeDev/altschooltestingBE/models"
	"github.com/kayceeDev/altschooltestingBE/services"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

const resourceNotFoundMessage = "Resource not found"

// MessageResponse is the body shape for every non-document response
type MessageResponse struct {
	Message string `json:"message"`
}

type UsersHandler struct {
	usersService services.UsersService
}

func NewUsersHandler(usersService services.UsersService) *UsersHandler {
	return &UsersHandler{usersService: usersService}
}

func (h *UsersHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List users request received from %s", r.RemoteAddr)

	users, err := h.usersService.ListUsers(r.Context())
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		utils.WriteJSONResponse(w, http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	utils.WriteJSONResponse(w, http.StatusOK, users)
}

func (h *UsersHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create user request received from %s", r.RemoteAddr)

	fields, err := fieldsFromRequest(r)
	if err != nil {
		log.Printf("❌ Invalid user fields: %v", err)
		utils.WriteJSONResponse(w, http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.usersService.CreateUser(r.Context(), fields)
	if err != nil {
		log.Printf("❌ Failed to create user: %v", err)
		utils.WriteJSONResponse(w, http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	log.Printf("✅ User created successfully: %s", user.ID.Hex())
	utils.WriteJSONResponse(w, http.StatusCreated, user)
}

func (h *UsersHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("✏️ Update user request received from %s", r.RemoteAddr)

	id := mux.Vars(r)["id"]

	fields, err := fieldsFromRequest(r)
	if err != nil {
		log.Printf("❌ Invalid user fields: %v", err)
		utils.WriteJSONResponse(w, http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	maybeUser, err := h.usersService.UpdateUser(r.Context(), id, fields)
	if err != nil {
		log.Printf("❌ Failed to update user %s: %v", id, err)
		utils.WriteJSONResponse(w, http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, ok := maybeUser.Get()
	if !ok {
		log.Printf("⚠️ User not found: %s", id)
		utils.WriteJSONResponse(w, http.StatusNotFound, MessageResponse{Message: resourceNotFoundMessage})
		return
	}

	log.Printf("✅ User updated successfully: %s", id)
	utils.WriteJSONResponse(w, http.StatusOK, user)
}

func (h *UsersHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Delete user request received from %s", r.RemoteAddr)

	id := mux.Vars(r)["id"]

	maybeUser, err := h.usersService.DeleteUser(r.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to delete user %s: %v", id, err)
		utils.WriteJSONResponse(w, http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}

	if maybeUser.IsAbsent() {
		log.Printf("⚠️ User not found: %s", id)
		utils.WriteJSONResponse(w, http.StatusNotFound, MessageResponse{Message: resourceNotFoundMessage})
		return
	}

	log.Printf("✅ User deleted successfully: %s", id)
	utils.WriteJSONResponse(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Resource with ID %s deleted", id)})
}

func (h *UsersHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering users API endpoints")

	router.HandleFunc("/users", h.HandleListUsers).Methods("GET")
	log.Printf("✅ GET /api/users endpoint registered")

	router.HandleFunc("/users", h.HandleCreateUser).Methods("POST")
	log.Printf("✅ POST /api/users endpoint registered")

	router.HandleFunc("/users/{id}", h.HandleUpdateUser).Methods("PUT")
	log.Printf("✅ PUT /api/users/{id} endpoint registered")

	router.HandleFunc("/users/{id}", h.HandleDeleteUser).Methods("DELETE")
	log.Printf("✅ DELETE /api/users/{id} endpoint registered")
}

// fieldsFromRequest casts the body parsed by the body parser middleware
func fieldsFromRequest(r *http.Request) (*models.UserFields, error) {
	body, ok := appctx.GetBody(r.Context())
	if !ok {
		body = map[string]any{}
	}
	return models.UserFieldsFromBody(body)
}

// NotFoundHandler answers unknown routes and unsupported methods
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusNotFound, MessageResponse{Message: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path)})
}
