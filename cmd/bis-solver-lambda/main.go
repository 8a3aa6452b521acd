//go:build lambda

package main

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/FlatBartender/bis-solver/internal/app"
	"github.com/FlatBartender/bis-solver/internal/catalog"
	"github.com/FlatBartender/bis-solver/internal/config"
	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/logger"
	"github.com/FlatBartender/bis-solver/internal/report"
	"github.com/FlatBartender/bis-solver/internal/solver"
)

//go:embed catalog.json
var embeddedCatalog string

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type solveRequest struct {
	// Catalog replaces the embedded catalog when set.
	Catalog   json.RawMessage           `json:"catalog"`
	Solver    string                    `json:"solver"`
	Evaluator string                    `json:"evaluator"`
	Timeline  *evaluator.TimelineConfig `json:"timeline"`
	Split     *solver.SplitConfig       `json:"split"`
	Rolling   *solver.RollingConfig     `json:"rolling"`
}

type solveResult struct {
	*report.Result
	Detail string `json:"detail"`
}

var log = zap.NewNop()

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(errors.InvalidArgument("invalid base64 body"))
		}
		body = string(decoded)
	}

	var req solveRequest
	if body != "" {
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			return errResp(errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid JSON"))
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		return errResp(err)
	}
	if req.Solver != "" {
		cfg.Solver.Kind = req.Solver
	}
	if req.Evaluator != "" {
		cfg.Evaluator.Kind = req.Evaluator
	}
	if req.Timeline != nil {
		cfg.Evaluator.Timeline = *req.Timeline
	}
	if req.Split != nil {
		cfg.Solver.Split = *req.Split
	}
	if req.Rolling != nil {
		cfg.Solver.Rolling = *req.Rolling
	}
	if err := config.Validate(cfg); err != nil {
		return errResp(err)
	}

	doc := embeddedCatalog
	if len(req.Catalog) > 0 {
		doc = string(req.Catalog)
	}
	items, err := catalog.Parse(doc)
	if err != nil {
		return errResp(err)
	}

	res, err := app.New(cfg, app.WithLogger(log)).Run(ctx, items, nil)
	if err != nil {
		return errResp(err)
	}

	respJSON, _ := json.Marshal(solveResult{Result: res, Detail: report.Text(res)})
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func statusCode(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidArgument:
		return 400
	case errors.CodeNotFound:
		return 404
	case errors.CodeFailedPrecondition:
		return 422
	case errors.CodeCanceled:
		return 504
	}
	return 500
}

func errResp(err error) (events.LambdaFunctionURLResponse, error) {
	code := statusCode(err)
	if code >= 500 {
		log.Error("solve failed", zap.Error(err))
	}
	body, _ := json.Marshal(map[string]any{"error": err.Error(), "code": errors.GetCode(err)})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	if l, err := logger.New(logger.Config{Level: logger.InfoLevel, Format: logger.JSONFormat}); err == nil {
		log = l
	}
	lambda.Start(handler)
}
