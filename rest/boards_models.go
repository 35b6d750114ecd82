package rest

type CreateBoardRequest struct {
	BoardID *int64 `json:"board_id" validate:"required"`
}

type BoardDetail struct {
	BoardID int64 `json:"board_id"`
}

type BoardsListResponse struct {
	Data []BoardDetail `json:"data"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
