package handler

import (
	"net/http"
	"strconv"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/usecase"
	"go-hospital-encounter/pkg/response"
	"go-hospital-encounter/pkg/validator"
)

type MedicineHandler struct {
	medicineUsecase usecase.MedicineUsecase
	validator       *validator.CustomValidator
}

func NewMedicineHandler(medicineUsecase usecase.MedicineUsecase, validator *validator.CustomValidator) *MedicineHandler {
	return &MedicineHandler{
		medicineUsecase: medicineUsecase,
		validator:       validator,
	}
}

func (h *MedicineHandler) SearchMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.MedicineSearchRequest{Query: query.Get("q")}

	if raw := query.Get("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid category ID", nil)
			return
		}
		req.CategoryID = categoryID
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		req.Limit = limit
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicines, err := h.medicineUsecase.SearchMedicines(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medicines retrieved successfully", medicines)
}
