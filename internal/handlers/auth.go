package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"examen-portal/internal/credentials"
	"examen-portal/internal/database"
	"examen-portal/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgLoginOK        = "¡Inicio de sesión exitoso!"
	msgLoginFailed    = "Usuario o contraseña incorrectos."
	msgRegisterFailed = "Error al registrar usuario. Intenta con otro nombre de usuario o correo."
	msgInvalidForm    = "Datos inválidos. Revisa los campos del formulario."
	msgLogout         = "Has cerrado sesión correctamente."
	msgUnavailable    = "El servicio no está disponible en este momento. Intenta nuevamente."
)

type AuthHandler struct {
	creds *credentials.Service
}

func NewAuthHandler(creds *credentials.Service) *AuthHandler {
	return &AuthHandler{creds: creds}
}

type registerForm struct {
	Nombre   string `form:"nombre"`
	Apellido string `form:"apellido"`
	Celular  string `form:"celular"`
	Email    string `form:"email"`
	Usuario  string `form:"usuario"`
	Password string `form:"password"`
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "registrar_usuario.html", gin.H{"Title": "Registrar usuario", "Form": registerForm{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.registerFailed(c, http.StatusBadRequest, msgInvalidForm, registerForm{})
		return
	}

	form.Nombre = strings.TrimSpace(form.Nombre)
	form.Apellido = strings.TrimSpace(form.Apellido)
	form.Celular = strings.TrimSpace(form.Celular)
	form.Email = strings.TrimSpace(form.Email)
	form.Usuario = strings.TrimSpace(form.Usuario)

	_, err := h.creds.Create(c.Request.Context(), credentials.NewUser{
		Nombre:   form.Nombre,
		Apellido: form.Apellido,
		Celular:  form.Celular,
		Email:    form.Email,
		Usuario:  form.Usuario,
		Password: form.Password,
	})
	form.Password = ""

	switch {
	case err == nil:
		middleware.AddFlash(c, middleware.FlashSuccess,
			fmt.Sprintf("Usuario '%s' registrado exitosamente. ¡Ahora puedes iniciar sesión!", form.Usuario))
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, credentials.ErrInvalidInput):
		h.registerFailed(c, http.StatusBadRequest, msgInvalidForm, form)
	case errors.Is(err, credentials.ErrDuplicateUser):
		h.registerFailed(c, http.StatusConflict, msgRegisterFailed, form)
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("registration failed")
		h.registerFailed(c, storeErrorStatus(err), msgRegisterFailed, form)
	}
}

func (h *AuthHandler) registerFailed(c *gin.Context, status int, msg string, form registerForm) {
	renderWithFlash(c, status, "registrar_usuario.html", middleware.FlashDanger, msg,
		gin.H{"Title": "Registrar usuario", "Form": form})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Iniciar sesión"})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		renderWithFlash(c, http.StatusBadRequest, "login.html", middleware.FlashDanger, msgInvalidForm,
			gin.H{"Title": "Iniciar sesión"})
		return
	}

	user, err := h.creds.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		status, msg := http.StatusUnauthorized, msgLoginFailed
		if !errors.Is(err, credentials.ErrInvalidCredentials) {
			log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("login failed")
			status, msg = storeErrorStatus(err), msgUnavailable
		}
		renderWithFlash(c, status, "login.html", middleware.FlashDanger, msg, gin.H{"Title": "Iniciar sesión"})
		return
	}

	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(middleware.SessionUserKey, user.Usuario)
	middleware.AddFlash(c, middleware.FlashSuccess, msgLoginOK)

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete(middleware.SessionUserKey)
	middleware.AddFlash(c, middleware.FlashInfo, msgLogout)
	c.Redirect(http.StatusFound, "/login")
}

func storeErrorStatus(err error) int {
	if errors.Is(err, database.ErrConnectionFailed) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
