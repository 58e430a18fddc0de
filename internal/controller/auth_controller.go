package controller

import (
	"ai-webchat-be/internal/dto"
	"ai-webchat-be/internal/pkg/logger"
	"ai-webchat-be/internal/pkg/serverutils"
	"ai-webchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	signinPage = "./static/signin.html"
	appPage    = "./static/index.html"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
	Signin(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Authorize(ctx *fiber.Ctx) error
	Guest(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	CurrentUser(ctx *fiber.Ctx) error
}

type authController struct {
	oauthService service.IOAuthService
	sessions     *serverutils.SessionManager
	log          logger.ILogger
}

func NewAuthController(oauthService service.IOAuthService, sessions *serverutils.SessionManager, log logger.ILogger) IAuthController {
	return &authController{
		oauthService: oauthService,
		sessions:     sessions,
		log:          log,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Home)
	r.Get("/signin", c.Signin)
	r.Get("/login", c.Login)
	r.Get("/authorize", c.Authorize)
	r.Get("/guest", c.Guest)
	r.Get("/logout", c.Logout)
	r.Get("/api/user", c.CurrentUser)
}

func (c *authController) Home(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	if !state.Authenticated() {
		return ctx.SendFile(signinPage)
	}
	return ctx.SendFile(appPage)
}

func (c *authController) Signin(ctx *fiber.Ctx) error {
	return ctx.SendFile(signinPage)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	return ctx.Redirect(c.oauthService.GetLoginURL())
}

// Authorize is the provider callback. Any failure sends the browser back to
// the sign-in page with an error flag; it never surfaces as an error page.
func (c *authController) Authorize(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		c.log.Warn("oauth", "Callback without authorization code", map[string]interface{}{
			"provider_error": ctx.Query("error"),
		})
		return ctx.Redirect("/signin?error=auth_failed")
	}

	user, err := c.oauthService.HandleCallback(ctx.Context(), code)
	if err != nil {
		c.log.Error("oauth", "Authorization failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Redirect("/signin?error=auth_failed")
	}

	state := serverutils.CurrentSession(ctx)
	state.User = user
	state.GuestMode = false
	if err := c.sessions.Save(ctx); err != nil {
		return err
	}

	return ctx.Redirect("/")
}

func (c *authController) Guest(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	state.GuestMode = true
	state.User = c.oauthService.GuestUser()
	if err := c.sessions.Save(ctx); err != nil {
		return err
	}

	return ctx.Redirect("/")
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	state.Reset()
	if err := c.sessions.Save(ctx); err != nil {
		return err
	}

	return ctx.Redirect("/signin")
}

func (c *authController) CurrentUser(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	if state.User == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Not authenticated"))
	}

	return ctx.JSON(&dto.UserResponse{
		ID:      state.User.ID,
		Email:   state.User.Email,
		Name:    state.User.Name,
		Picture: state.User.Picture,
		IsGuest: state.GuestMode,
	})
}
