package usecase

import (
	"context"
	"strings"

	"go-hospital-encounter/internal/converter"
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"

	"github.com/sirupsen/logrus"
)

type MedicineUsecase interface {
	SearchMedicines(ctx context.Context, req *dto.MedicineSearchRequest) (*dto.MedicineListResponse, error)
}

type medicineUsecase struct {
	log     *logrus.Logger
	catalog gateway.MedicineCatalog
}

func NewMedicineUsecase(log *logrus.Logger, catalog gateway.MedicineCatalog) MedicineUsecase {
	return &medicineUsecase{
		log:     log,
		catalog: catalog,
	}
}

func (u *medicineUsecase) SearchMedicines(ctx context.Context, req *dto.MedicineSearchRequest) (*dto.MedicineListResponse, error) {
	filter := entity.MedicineFilter{
		Query:      strings.TrimSpace(req.Query),
		CategoryID: req.CategoryID,
		Limit:      req.Limit,
	}

	medicines, err := u.catalog.SearchMedicines(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search medicines: %+v", err)
		return nil, err
	}

	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(medicines),
		Total:     len(medicines),
	}, nil
}
