package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/api/middleware"
	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// pageData is the view model shared by every page template.
type pageData struct {
	Title       string
	CurrentUser *domain.User
	Error       string
	Message     string

	Email          string
	Location       string
	Accommodations []*domain.Accommodation
	Bookings       *ports.MyBookings
	AdminBookings  []*domain.AccommodationBooking
	Users          []*domain.User
}

// CookieOptions controls the session cookie written by the login page.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// PageHandler serves the server-rendered pages. Routes are mounted behind
// CookieAuth, so CurrentUser may be nil on any of them.
type PageHandler struct {
	auth           ports.AuthService
	accommodations ports.AccommodationService
	bookings       ports.BookingService
	cookie         CookieOptions
	log            zerolog.Logger
}

func NewPageHandler(
	auth ports.AuthService,
	accommodations ports.AccommodationService,
	bookings ports.BookingService,
	cookie CookieOptions,
	log zerolog.Logger,
) *PageHandler {
	return &PageHandler{
		auth:           auth,
		accommodations: accommodations,
		bookings:       bookings,
		cookie:         cookie,
		log:            log,
	}
}

func (h *PageHandler) data(c echo.Context, title string) pageData {
	return pageData{Title: title, CurrentUser: middleware.CurrentUser(c)}
}

func redirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Home lists accommodations for anonymous and signed-in visitors alike.
func (h *PageHandler) Home(c echo.Context) error {
	d := h.data(c, "Accommodations")
	d.Location = c.QueryParam("location")

	list, err := h.accommodations.List(c.Request().Context(), ports.AccommodationFilter{Location: d.Location})
	if err != nil {
		return err
	}
	d.Accommodations = list
	return c.Render(http.StatusOK, "home.html", d)
}

func (h *PageHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", h.data(c, "Register"))
}

// Register creates an account and sends the visitor to the login page.
func (h *PageHandler) Register(c echo.Context) error {
	d := h.data(c, "Register")
	d.Email = strings.TrimSpace(c.FormValue("email"))

	_, err := h.auth.Register(c.Request().Context(), d.Email, c.FormValue("password"))
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, domain.ErrUserExists):
		d.Error = "Email already registered"
	case errors.Is(err, domain.ErrInvalidInput):
		d.Error = "A valid email and password are required"
	default:
		return err
	}
	return c.Render(http.StatusBadRequest, "register.html", d)
}

func (h *PageHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", h.data(c, "Log in"))
}

// Login verifies the form credentials and stores "Bearer <token>" in the
// session cookie.
func (h *PageHandler) Login(c echo.Context) error {
	d := h.data(c, "Log in")
	d.Email = strings.TrimSpace(c.FormValue("email"))

	issued, _, err := h.auth.Login(c.Request().Context(), d.Email, c.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Debug().Str("email", d.Email).Msg("page login rejected")
			d.Error = "Incorrect email or password"
			return c.Render(http.StatusUnauthorized, "login.html", d)
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "Bearer " + issued.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie.
func (h *PageHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) CreateAccommodationForm(c echo.Context) error {
	if middleware.CurrentUser(c) == nil {
		return redirectToLogin(c)
	}
	return c.Render(http.StatusOK, "accommodation_create.html", h.data(c, "List your place"))
}

// CreateAccommodation creates a listing owned by the signed-in user.
func (h *PageHandler) CreateAccommodation(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return redirectToLogin(c)
	}

	d := h.data(c, "List your place")
	fields := domain.AccommodationFields{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Location: strings.TrimSpace(c.FormValue("location")),
	}
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		fields.Description = &desc
	}
	price, err := strconv.Atoi(c.FormValue("price"))
	if err != nil {
		d.Error = "Price must be a whole number"
		return c.Render(http.StatusBadRequest, "accommodation_create.html", d)
	}
	fields.Price = price

	if _, err := h.accommodations.Create(c.Request().Context(), user, fields); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			d.Error = err.Error()
			return c.Render(http.StatusBadRequest, "accommodation_create.html", d)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// MyBookings shows the signed-in user's stays and flights.
func (h *PageHandler) MyBookings(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return redirectToLogin(c)
	}

	mine, err := h.bookings.MyBookings(c.Request().Context(), user)
	if err != nil {
		return err
	}
	d := h.data(c, "My bookings")
	d.Bookings = mine
	return c.Render(http.StatusOK, "my_bookings.html", d)
}

// AdminDashboard is mounted behind RequireAdminPage.
func (h *PageHandler) AdminDashboard(c echo.Context) error {
	bookings, err := h.bookings.ListAccommodationBookings(c.Request().Context(), ports.Page{})
	if err != nil {
		return err
	}
	d := h.data(c, "Admin dashboard")
	d.AdminBookings = bookings
	return c.Render(http.StatusOK, "admin_dashboard.html", d)
}

// AdminUsers is mounted behind RequireAdminPage.
func (h *PageHandler) AdminUsers(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	users, err := h.auth.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	d := h.data(c, "Users")
	d.Users = users
	return c.Render(http.StatusOK, "admin_users.html", d)
}
