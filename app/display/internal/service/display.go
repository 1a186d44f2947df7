package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/plant_radar/app/display/internal/domain"
	"github.com/iWorld-y/plant_radar/app/display/internal/usecase"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/imageutil"
)

type DisplayService struct {
	ucDiagnosis *usecase.DiagnosisUseCase
	log         *log.Helper
}

func NewDisplayService(ucDiagnosis *usecase.DiagnosisUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucDiagnosis: ucDiagnosis,
		log:         log.NewHelper(logger),
	}
}

func (s *DisplayService) Diagnose(ctx context.Context, req *domain.DiagnoseReq) (*domain.DiagnosisReply, error) {
	img := req.Image
	if len(img) == 0 && req.ImageB64 != "" {
		b, err := imageutil.DecodeBase64(req.ImageB64)
		if err != nil {
			return nil, errors.BadRequest("INVALID_IMAGE", "image_b64 is not valid base64")
		}
		img = b
	}
	return s.ucDiagnosis.Diagnose(ctx, img)
}

func (s *DisplayService) Interpret(ctx context.Context, req *domain.InterpretReq) (*domain.InterpretReply, error) {
	return s.ucDiagnosis.Interpret(ctx, req.Text)
}
