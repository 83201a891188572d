package acquire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"

	"invoscan/internal/port"
)

// AzureOCR reads printed invoice text through the Azure Computer Vision
// OCR API. Every page image is pre-processed for legibility before it is
// sent to the engine.
type AzureOCR struct {
	client *computervision.BaseClient
}

// NewAzureOCR builds the OCR source against the given Cognitive Services
// endpoint and key.
func NewAzureOCR(endpoint, apiKey string) *AzureOCR {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &AzureOCR{client: &client}
}

// Name implements port.TextSource.
func (a *AzureOCR) Name() string { return "azure-ocr" }

// Text implements port.TextSource. Multi-page documents are recognized
// page by page and the pages concatenated in order.
func (a *AzureOCR) Text(ctx context.Context, doc port.Document) (string, error) {
	pages, err := pageImages(doc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, page := range pages {
		enhanced, err := enhanceForOCR(page)
		if err != nil {
			// Recognition still works on the raw image, just less reliably.
			enhanced = page
		}

		imageReader := io.NopCloser(bytes.NewReader(enhanced))
		result, err := a.client.RecognizePrintedTextInStream(
			ctx,
			true,
			imageReader,
			computervision.OcrLanguages(computervision.En),
		)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", i+1, err)
		}
		b.WriteString(flattenOCRResult(result))
	}
	return b.String(), nil
}

// flattenOCRResult joins recognized words into lines and lines into
// text, keeping the engine's reading order.
func flattenOCRResult(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}
	var b strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			var words []string
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}
