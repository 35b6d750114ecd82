package rest

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateBoardHandler(c *fiber.Ctx) error {
	var req CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if req.BoardID == nil {
		return ReturnBadRequest(c, "board_id is required")
	}

	board, err := h.svc.CreateBoard(c.UserContext(), *req.BoardID)
	if err != nil {
		return ReturnError(c, err, "Failed to create board")
	}

	return c.Status(fiber.StatusCreated).JSON(BoardDetail{BoardID: board.BoardID})
}

func (h *Handler) ListBoardsHandler(c *fiber.Ctx) error {
	boards, err := h.svc.ListBoards(c.UserContext())
	if err != nil {
		return ReturnError(c, err, "Failed to retrieve boards")
	}

	details := make([]BoardDetail, len(boards))
	for i, board := range boards {
		details[i] = BoardDetail{BoardID: board.BoardID}
	}

	return c.JSON(BoardsListResponse{Data: details})
}

func (h *Handler) GetBoardHandler(c *fiber.Ctx) error {
	boardID, err := paramID(c, "boardId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	board, err := h.svc.GetBoard(c.UserContext(), boardID)
	if err != nil {
		return ReturnError(c, err, "Failed to retrieve board")
	}

	return c.JSON(BoardDetail{BoardID: board.BoardID})
}

func (h *Handler) DeleteBoardHandler(c *fiber.Ctx) error {
	boardID, err := paramID(c, "boardId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	if err := h.svc.DeleteBoard(c.UserContext(), boardID); err != nil {
		return ReturnError(c, err, "Failed to delete board")
	}

	return c.JSON(SuccessResponse{Message: "Board deleted"})
}
