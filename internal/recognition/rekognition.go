// internal/recognition/rekognition.go
package recognition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"calee/internal/models"
	"calee/internal/storage"
)

// LabelDetector is the subset of the Rekognition client used here.
type LabelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// FoodLookup resolves a label to a catalog food.
type FoodLookup interface {
	FindFoodByName(ctx context.Context, name string) (*models.Food, error)
}

// Labels too generic to identify a food.
var genericLabels = map[string]bool{
	"food": true, "meal": true, "dish": true, "plant": true, "produce": true,
	"breakfast": true, "lunch": true, "dinner": true, "platter": true, "plate": true,
}

// RekognitionRecognizer detects labels with AWS Rekognition and estimates
// calories from matching catalog foods.
type RekognitionRecognizer struct {
	client LabelDetector
	foods  FoodLookup
	logger *slog.Logger
}

func NewRekognitionRecognizer(client LabelDetector, foods FoodLookup, logger *slog.Logger) *RekognitionRecognizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RekognitionRecognizer{client: client, foods: foods, logger: logger}
}

// NewRekognitionFromRegion builds the AWS client from the default credential chain.
func NewRekognitionFromRegion(ctx context.Context, region string, foods FoodLookup, logger *slog.Logger) (*RekognitionRecognizer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return NewRekognitionRecognizer(rekognition.NewFromConfig(cfg), foods, logger), nil
}

func (r *RekognitionRecognizer) Recognize(ctx context.Context, image []byte, _ string) ([]models.RecognizedFood, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: detect labels: %v", ErrUpstream, err)
	}

	foods := []models.RecognizedFood{}
	seen := map[int64]bool{}
	for _, label := range out.Labels {
		name := strings.TrimSpace(aws.ToString(label.Name))
		if name == "" || genericLabels[strings.ToLower(name)] {
			continue
		}

		food, err := r.foods.FindFoodByName(ctx, name)
		if errors.Is(err, storage.ErrNotFound) {
			r.logger.Debug("no catalog match for label", "label", name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to match label %q: %w", name, err)
		}
		if seen[food.ID] {
			continue
		}
		seen[food.ID] = true

		foods = append(foods, models.RecognizedFood{
			Name:              food.Name,
			Confidence:        float64(aws.ToFloat32(label.Confidence)) / 100,
			EstimatedCalories: food.CaloriesPerServing,
			EstimatedMacros: models.Macros{
				Carbohydrates: food.Carbohydrates,
				Protein:       food.Protein,
				Fat:           food.Fat,
			},
			SuggestedServings: 1,
			FoodID:            food.ID,
		})
	}
	return foods, nil
}
