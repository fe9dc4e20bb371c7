package handlers

import (
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskify/taskify-api/config"
	"github.com/taskify/taskify-api/middleware"
	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
	"github.com/taskify/taskify-api/storage"
	"github.com/taskify/taskify-api/utils"
)

const maxAvatarSize = 5 * 1024 * 1024

var allowedAvatarExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// AuthHandler serves registration, login, and profile management. Each
// request gets its own unit of work from the factory.
type AuthHandler struct {
	newUoW repository.UnitOfWorkFactory
	cfg    *config.Config
	blobs  storage.BlobStorage
}

// NewAuthHandler wires the handler.
func NewAuthHandler(newUoW repository.UnitOfWorkFactory, cfg *config.Config, blobs storage.BlobStorage) *AuthHandler {
	return &AuthHandler{newUoW: newUoW, cfg: cfg, blobs: blobs}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string   `json:"token"`
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

type userInfoResponse struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	UserName  string   `json:"userName"`
	AvatarURL string   `json:"avatarUrl"`
	Roles     []string `json:"roles"`
}

type updateProfileRequest struct {
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates a user with the default User role and returns a token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "A valid email is required"})
	}

	if req.Password != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Passwords do not match"})
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	uow := h.newUoW()

	existing, err := uow.Users().GetByEmail(c.Context(), email)
	if err != nil {
		return serverError(c, err)
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User with this email already exists"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return serverError(c, err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		UserName:     email[:strings.Index(email, "@")],
		CreatedAt:    time.Now().UTC(),
	}

	if err := uow.Users().Create(c.Context(), user); err != nil {
		return serverError(c, err)
	}
	if err := uow.Users().AddRole(c.Context(), user.ID, models.RoleUser); err != nil {
		return serverError(c, err)
	}
	user.Roles = []string{models.RoleUser}

	return h.respondWithToken(c, user)
}

// Login verifies credentials and returns a token. Unknown email and wrong
// password produce the same message.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	user, err := h.newUoW().Users().GetByEmail(c.Context(), req.Email)
	if err != nil {
		return serverError(c, err)
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	return h.respondWithToken(c, user)
}

// Logout exists for client symmetry; the token is discarded client-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, errResp := h.currentUser(c, h.newUoW())
	if user == nil {
		return errResp
	}
	return c.JSON(toUserInfo(user))
}

// UpdateProfile overwrites the display name and, if provided, the avatar URL.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	uow := h.newUoW()
	user, errResp := h.currentUser(c, uow)
	if user == nil {
		return errResp
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if strings.TrimSpace(req.FullName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Full name is required"})
	}

	user.UserName = strings.TrimSpace(req.FullName)
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := uow.Users().Update(c.Context(), user); err != nil {
		return serverError(c, err)
	}

	return c.JSON(toUserInfo(user))
}

// ChangePassword verifies the current password, then applies the new one.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	uow := h.newUoW()
	user, errResp := h.currentUser(c, uow)
	if user == nil {
		return errResp
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Current password is incorrect"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Passwords do not match"})
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return serverError(c, err)
	}
	user.PasswordHash = hash

	if err := uow.Users().Update(c.Context(), user); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// UploadAvatar stores the uploaded image keyed by user id + extension and
// updates the profile. A failed profile write rolls back and removes the
// stored file so no orphan is left behind.
func (h *AuthHandler) UploadAvatar(c *fiber.Ctx) error {
	uow := h.newUoW()
	user, errResp := h.currentUser(c, uow)
	if user == nil {
		return errResp
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No file uploaded"})
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileHeader.Filename), "."))
	if !allowedAvatarExts[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid file type. Allowed: jpg, jpeg, png, gif, webp"})
	}
	if fileHeader.Size > maxAvatarSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "File size exceeds 5MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return serverError(c, err)
	}

	oldKey := ""
	if user.AvatarURL != "" {
		oldKey = path.Base(user.AvatarURL)
	}
	newKey := user.ID + "." + ext

	if err := h.blobs.Put(newKey, data); err != nil {
		return serverError(c, err)
	}

	user.AvatarURL = h.blobs.URL(newKey)

	if err := uow.Begin(c.Context()); err != nil {
		h.discardBlob(newKey)
		return serverError(c, err)
	}
	if err := uow.Users().Update(c.Context(), user); err != nil {
		uow.Rollback()
		h.discardBlob(newKey)
		return serverError(c, err)
	}
	if err := uow.Commit(); err != nil {
		h.discardBlob(newKey)
		return serverError(c, err)
	}

	if oldKey != "" && oldKey != newKey {
		if err := h.blobs.Delete(oldKey); err != nil {
			log.Println("failed to remove previous avatar:", err)
		}
	}

	return c.JSON(toUserInfo(user))
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, user *models.User) error {
	token, err := utils.GenerateJWT(user, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTAudience,
		time.Duration(h.cfg.JWTExpirationMinutes)*time.Minute)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(authResponse{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	})
}

// discardBlob removes a blob written during a failed upload and logs when
// even the cleanup fails.
func (h *AuthHandler) discardBlob(key string) {
	if err := h.blobs.Delete(key); err != nil {
		log.Println("failed to remove avatar after failed update:", err)
	}
}

// currentUser loads the principal's user row. On failure it writes the
// response and returns nil for the user.
func (h *AuthHandler) currentUser(c *fiber.Ctx, uow repository.UnitOfWork) (*models.User, error) {
	userID, _, _ := middleware.Principal(c)
	if userID == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "User not found"})
	}

	user, err := uow.Users().GetByID(c.Context(), userID)
	if err != nil {
		return nil, serverError(c, err)
	}
	if user == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	return user, nil
}

func toUserInfo(user *models.User) userInfoResponse {
	return userInfoResponse{
		UserID:    user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
		Roles:     user.Roles,
	}
}
