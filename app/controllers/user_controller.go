// Package controllers holds the HTTP handlers. Controllers validate
// input, call services/repositories, and shape responses; they hold no
// business rules of their own.
package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/app/services"
	"github.com/aamirkhan2478/elite-market-backend/pkg/auth"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
	"github.com/aamirkhan2478/elite-market-backend/pkg/storage"
)

// UserController covers registration, login and account management.
type UserController struct {
	auth  *services.AuthService
	users *repositories.UserRepository
	carts *repositories.CartRepository
}

func NewUserController(auth *services.AuthService, users *repositories.UserRepository, carts *repositories.CartRepository) *UserController {
	return &UserController{auth: auth, users: users, carts: carts}
}

// signupInput carries the exact messages the storefront client matches on.
type signupInput struct {
	Name     string `json:"name" validate:"required,regex=^[A-Za-z ]{3,20}$" message:"Name should have at least 3 characters and should not any number!"`
	Email    string `json:"email" validate:"required,email" message:"Email is invalid"`
	Address  string `json:"address" validate:"required"`
	Mobile   string `json:"mobile" validate:"required,digits=11" message:"Mobile must be a number and equal to 11 numbers"`
	Password string `json:"password" validate:"required,password" message:"Password must contain at least 8 characters, 1 number, 1 upper, 1 lowercase and 1 special character!"`
	Pic      string `json:"pic" validate:"nullable,url"`
}

// Signup handles POST /api/user/signup.
func (uc *UserController) Signup(c *ctx.Context) {
	var in signupInput
	if !c.BindJSONAll(&in) {
		return
	}

	_, token, err := uc.auth.Signup(c.Context(), services.SignupInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Address:  in.Address,
		Mobile:   in.Mobile,
		Pic:      in.Pic,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			c.Error(http.StatusBadRequest, "User already exists")
			return
		}
		logger.WithCtx(c.Context()).Error("signup", "error", err)
		c.ServerError()
		return
	}

	c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"msg":     "User Registered Successfully",
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/user/login.
func (uc *UserController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		c.Error(http.StatusBadRequest, "Please fill all required fields")
		return
	}

	_, token, err := uc.auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Error(http.StatusBadRequest, "Invalid Credentials")
			return
		}
		logger.WithCtx(c.Context()).Error("login", "error", err)
		c.ServerError()
		return
	}

	c.JSON(http.StatusOK, map[string]any{"success": true, "token": token})
}

// GetUser handles GET /api/user/get-user — the authenticated user's own
// record, freshly loaded by the auth middleware.
func (uc *UserController) GetUser(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	c.Success(user)
}

// UpdateUser handles PUT /api/user/update-user/{id}.
func (uc *UserController) UpdateUser(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("User not found")
		return
	}

	var in signupInput
	if !c.BindJSONAll(&in) {
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		logger.WithCtx(c.Context()).Error("update user: hash password", "error", err)
		c.ServerError()
		return
	}

	fields := bson.M{
		"name":     in.Name,
		"email":    in.Email,
		"address":  in.Address,
		"mobile":   in.Mobile,
		"password": hash,
	}
	if in.Pic != "" {
		fields["pic"] = in.Pic
	}

	if err := uc.users.Update(c.Context(), id, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("User not found")
			return
		}
		logger.WithCtx(c.Context()).Error("update user", "error", err)
		c.ServerError()
		return
	}

	c.JSON(http.StatusOK, map[string]string{"msg": "User Updated Successfully"})
}

type changePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password" message:"Password must contain at least 8 characters, 1 number, 1 upper, 1 lowercase and 1 special character!"`
}

// ChangePassword handles PUT /api/user/change-password/{id}. Users may
// only change their own password.
func (uc *UserController) ChangePassword(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("User not found")
		return
	}
	if id != user.ID {
		c.Forbidden()
		return
	}

	var in changePasswordInput
	if !c.BindJSON(&in) {
		return
	}

	if !auth.CheckPassword(user.Password, in.OldPassword) {
		c.Error(http.StatusBadRequest, "Old password is incorrect")
		return
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		logger.WithCtx(c.Context()).Error("change password: hash", "error", err)
		c.ServerError()
		return
	}

	if err := uc.users.Update(c.Context(), user.ID, bson.M{"password": hash}); err != nil {
		logger.WithCtx(c.Context()).Error("change password", "error", err)
		c.ServerError()
		return
	}

	c.Message("Password changed successfully")
}

// DeleteAccount handles DELETE /api/user/delete-account/{id}. Users may
// delete their own account; admins may delete any. The user's cart
// entries go with the account.
func (uc *UserController) DeleteAccount(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("User not found")
		return
	}
	if id != user.ID && !user.IsAdmin {
		c.Forbidden()
		return
	}

	if err := uc.carts.DeleteByUser(c.Context(), id); err != nil {
		logger.WithCtx(c.Context()).Error("delete account: carts", "error", err)
		c.ServerError()
		return
	}
	if err := uc.users.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("User not found")
			return
		}
		logger.WithCtx(c.Context()).Error("delete account", "error", err)
		c.ServerError()
		return
	}

	c.Message("Account deleted successfully")
}

// ProfilePicture handles POST /api/user/profile-picture (multipart field
// "pic"). The file is stored on the configured disk and the public URL is
// saved on the user.
func (uc *UserController) ProfilePicture(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	file, header, err := c.FormFile("pic")
	if err != nil {
		c.Error(http.StatusBadRequest, "File not found")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WithCtx(c.Context()).Error("profile picture: read", "error", err)
		c.ServerError()
		return
	}

	path := fmt.Sprintf("uploads/users/%s-%d%s",
		user.ID.Hex(), time.Now().UnixNano(), filepath.Ext(header.Filename))
	if err := storage.Put(path, data); err != nil {
		logger.WithCtx(c.Context()).Error("profile picture: store", "error", err)
		c.ServerError()
		return
	}

	url := storage.URL(path)
	if err := uc.users.Update(c.Context(), user.ID, bson.M{"pic": url}); err != nil {
		logger.WithCtx(c.Context()).Error("profile picture: update", "error", err)
		c.ServerError()
		return
	}

	c.JSON(http.StatusOK, map[string]string{"message": "Profile picture updated", "pic": url})
}

// ShowUsers handles GET /api/user/show-users (admin) with pagination.
func (uc *UserController) ShowUsers(c *ctx.Context) {
	p := pagination.FromRequest(c.R)
	users, total, err := uc.users.List(c.Context(), p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("show users", "error", err)
		c.ServerError()
		return
	}
	c.Success(p.Wrap(users, total))
}

// CountUsers handles GET /api/user/count-user (admin).
func (uc *UserController) CountUsers(c *ctx.Context) {
	count, err := uc.users.Count(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("count users", "error", err)
		c.ServerError()
		return
	}
	c.JSON(http.StatusOK, map[string]int64{"count": count})
}
