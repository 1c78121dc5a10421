package ocr

import (
	"context"
	"log/slog"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"go.uber.org/fx"
	"google.golang.org/api/option"

	"gachigage/config"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/service"
	"gachigage/internal/errors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// visionRecognizer implements service.TextRecognizer on the Google Cloud
// Vision document-text API.
type visionRecognizer struct {
	client            *vision.ImageAnnotatorClient
	logger            *slog.Logger
	maxWidth          int
	binarizeThreshold int
}

// NewTextRecognizer is the constructor for the configured OCR engine. An
// empty provider selects the offline fixture recognizer; "vision" builds a
// Cloud Vision client, falling back to application default credentials when
// no credentials path is configured.
func NewTextRecognizer(params Params) (service.TextRecognizer, error) {
	var provider, credentialsPath string
	var maxWidth, binarizeThreshold int
	if params.Config.OCR != nil {
		provider = params.Config.OCR.Provider
		credentialsPath = params.Config.OCR.CredentialsPath
		maxWidth = params.Config.OCR.MaxWidth
		binarizeThreshold = params.Config.OCR.BinarizeThreshold
	}

	switch provider {
	case "":
		return newFixtureRecognizer(params.Logger), nil
	case "vision":
	default:
		return nil, errors.Errorf("unsupported ocr provider: %s", provider)
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := vision.NewImageAnnotatorClient(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create vision client")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return &visionRecognizer{
		client:            client,
		logger:            params.Logger,
		maxWidth:          maxWidth,
		binarizeThreshold: binarizeThreshold,
	}, nil
}

// Recognize runs document text detection on the preprocessed image. An answer
// without text means the photo is unusable and the user has to retake it.
func (r *visionRecognizer) Recognize(ctx context.Context, imageData []byte) (string, error) {
	prepared, err := preprocess(imageData, r.maxWidth, r.binarizeThreshold)
	if err != nil {
		r.logger.WarnContext(ctx, "image preprocessing failed, sending original",
			slog.String("error", err.Error()))
		prepared = imageData
	}

	resp, err := r.client.BatchAnnotateImages(ctx, documentTextRequest(prepared))
	if err != nil {
		return "", errors.Wrap(err, "vision document text detection failed")
	}

	return documentTextFrom(resp)
}

// documentTextRequest wraps one image into a DOCUMENT_TEXT_DETECTION batch.
func documentTextRequest(image []byte) *visionpb.BatchAnnotateImagesRequest {
	return &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	}
}

// documentTextFrom pulls the full text annotation out of a batch response.
func documentTextFrom(resp *visionpb.BatchAnnotateImagesResponse) (string, error) {
	if resp == nil || len(resp.GetResponses()) == 0 {
		return "", domainerrors.ErrRecognitionFailed
	}

	annotation := resp.GetResponses()[0]
	if apiErr := annotation.GetError(); apiErr != nil {
		return "", errors.Errorf("vision annotation failed: %s", apiErr.GetMessage())
	}

	text := annotation.GetFullTextAnnotation().GetText()
	if strings.TrimSpace(text) == "" {
		return "", domainerrors.ErrRecognitionFailed
	}

	return text, nil
}
