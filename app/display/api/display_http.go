package api

import (
	"context"
	stderrors "errors"
	"io"
	"mime"
	nethttp "net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/plant_radar/app/display/internal/domain"
)

const (
	OperationDisplayDiagnose  = "/plant_radar.display.v1.Display/Diagnose"
	OperationDisplayInterpret = "/plant_radar.display.v1.Display/Interpret"
)

// multipart 表单在内存中保留的上限，超出部分落临时文件
const maxMemory = 32 << 20

type DisplayHTTPServer interface {
	Diagnose(context.Context, *domain.DiagnoseReq) (*domain.DiagnosisReply, error)
	Interpret(context.Context, *domain.InterpretReq) (*domain.InterpretReply, error)
}

func RegisterDisplayHTTPServer(s *http.Server, srv DisplayHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/diagnose", _Display_Diagnose0_HTTP_Handler(srv))
	r.POST("/v1/interpret", _Display_Interpret0_HTTP_Handler(srv))
}

func _Display_Diagnose0_HTTP_Handler(srv DisplayHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.DiagnoseReq
		if err := bindDiagnose(ctx, &in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationDisplayDiagnose)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Diagnose(ctx, req.(*domain.DiagnoseReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*domain.DiagnosisReply)
		return ctx.Result(200, reply)
	}
}

func _Display_Interpret0_HTTP_Handler(srv DisplayHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.InterpretReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationDisplayInterpret)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Interpret(ctx, req.(*domain.InterpretReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*domain.InterpretReply)
		return ctx.Result(200, reply)
	}
}

// bindDiagnose 支持 multipart 上传 (字段 image) 和 JSON body
func bindDiagnose(ctx http.Context, in *domain.DiagnoseReq) error {
	req := ctx.Request()
	mt, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		return ctx.Bind(in)
	}

	if err := req.ParseMultipartForm(maxMemory); err != nil {
		if tooLarge(err) {
			return errors.New(nethttp.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", err.Error())
		}
		return errors.BadRequest("BAD_FORM", err.Error())
	}
	f, hdr, err := req.FormFile("image")
	if err != nil {
		return errors.BadRequest("EMPTY_IMAGE", "Please select an image file")
	}
	defer f.Close()

	in.Image, err = io.ReadAll(io.LimitReader(f, hdr.Size+1))
	if err != nil {
		return errors.BadRequest("BAD_FORM", err.Error())
	}
	return nil
}

// tooLarge 请求体超过服务端 MaxBytesReader 的限制
func tooLarge(err error) bool {
	var mbe *nethttp.MaxBytesError
	return stderrors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
