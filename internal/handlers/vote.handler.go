package handlers

import (
	"time"

	"mealvote/internal/app"
	voteController "mealvote/internal/controllers/vote"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// votedTodayCookie is a soft anti-abuse signal only. The database unique
// constraint is the authority on duplicate votes; this cookie just lets a
// shared device short-circuit obvious repeats.
const votedTodayCookie = "voted_today"

type VoteHandler struct {
	Handler
	controller voteController.VoteControllerInterface
	loc        *time.Location
}

func NewVoteHandler(app app.App, router fiber.Router) *VoteHandler {
	log := logger.New("handlers").File("vote_handler")
	return &VoteHandler{
		controller: app.Controllers.Vote,
		loc:        app.Location,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VoteHandler) Register() {
	votes := h.router.Group("/votes", h.middleware.RequireAuth(), h.middleware.RequireRoles(RoleVoter, RoleStaff))

	votes.Post("/", h.castVote)
	votes.Put("/", h.updateVote)
	votes.Get("/me", h.getMyVote)
}

func (h *VoteHandler) voteError(c *fiber.Ctx, err error) error {
	return respondError(c, err,
		errStatus{voteController.ErrValidation, fiber.StatusBadRequest},
		errStatus{voteController.ErrNotFound, fiber.StatusNotFound},
		errStatus{voteController.ErrForbidden, fiber.StatusForbidden},
	)
}

func (h *VoteHandler) setVotedCookie(c *fiber.Ctx) {
	now := time.Now().In(h.loc)
	c.Cookie(&fiber.Cookie{
		Name:     votedTodayCookie,
		Value:    now.Format(utils.DateOnlyFormat),
		Expires:  utils.EndOfDay(now, h.loc),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (h *VoteHandler) castVote(c *fiber.Ctx) error {
	log := h.log.Function("castVote")

	today := time.Now().In(h.loc).Format(utils.DateOnlyFormat)
	if c.Cookies(votedTodayCookie) == today {
		log.Info("rejected by voted_today cookie")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You already voted."})
	}

	var request voteController.CastVoteRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	vote, err := h.controller.CastVote(c.UserContext(), middleware.GetUser(c), &request)
	if err != nil {
		return h.voteError(c, err)
	}

	h.setVotedCookie(c)
	return c.Status(fiber.StatusCreated).JSON(vote)
}

func (h *VoteHandler) updateVote(c *fiber.Ctx) error {
	log := h.log.Function("updateVote")

	var request voteController.CastVoteRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	vote, err := h.controller.UpdateVote(c.UserContext(), middleware.GetUser(c), &request)
	if err != nil {
		return h.voteError(c, err)
	}

	return c.JSON(vote)
}

func (h *VoteHandler) getMyVote(c *fiber.Ctx) error {
	vote, err := h.controller.GetMyVote(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return h.voteError(c, err)
	}

	return c.JSON(vote)
}
