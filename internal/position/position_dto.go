package position

import "time"

type CreatePositionRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int   `json:"parent_id" binding:"omitempty,gt=0"`
}

type UpdatePositionRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int   `json:"parent_id" binding:"omitempty,gt=0"`
}

type PositionResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ParentID  *int   `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func mapToResponse(pos Position) PositionResponse {
	resp := PositionResponse{
		ID:       pos.ID,
		Name:     pos.Name,
		ParentID: pos.ParentID,
	}
	if !pos.CreatedAt.IsZero() {
		resp.CreatedAt = pos.CreatedAt.Format(time.RFC3339)
	}
	if pos.UpdatedAt != nil {
		resp.UpdatedAt = pos.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(positions []Position) []PositionResponse {
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapToResponse(p)
	}
	return res
}
