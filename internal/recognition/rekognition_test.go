package recognition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calee/internal/models"
	"calee/internal/storage"
)

type fakeDetector struct {
	labels []types.Label
	err    error
	input  *rekognition.DetectLabelsInput
}

func (f *fakeDetector) DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, _ ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &rekognition.DetectLabelsOutput{Labels: f.labels}, nil
}

type catalog map[string]*models.Food

func (c catalog) FindFoodByName(_ context.Context, name string) (*models.Food, error) {
	if f, ok := c[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("food %q: %w", name, storage.ErrNotFound)
}

func label(name string, conf float32) types.Label {
	return types.Label{Name: aws.String(name), Confidence: aws.Float32(conf)}
}

func TestRekognitionMatchesCatalog(t *testing.T) {
	apple := &models.Food{ID: 7, Name: "Apple", CaloriesPerServing: 95, Carbohydrates: 25, Protein: 0.5, Fat: 0.3}
	det := &fakeDetector{labels: []types.Label{
		label("Food", 99),
		label("Apple", 90),
		label("Fruit", 88),
		label("apple", 80),
	}}

	r := NewRekognitionRecognizer(det, catalog{"apple": apple}, nil)
	foods, err := r.Recognize(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, []byte("img"), det.input.Image.Bytes)
	require.Len(t, foods, 1)
	assert.Equal(t, "Apple", foods[0].Name)
	assert.Equal(t, int64(7), foods[0].FoodID)
	assert.InDelta(t, 0.9, foods[0].Confidence, 0.0001)
	assert.Equal(t, 95.0, foods[0].EstimatedCalories)
	assert.Equal(t, 25.0, foods[0].EstimatedMacros.Carbohydrates)
}

func TestRekognitionNoMatchIsEmpty(t *testing.T) {
	det := &fakeDetector{labels: []types.Label{label("Pizza", 95)}}
	foods, err := NewRekognitionRecognizer(det, catalog{}, nil).Recognize(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, foods)
}

func TestRekognitionFailureIsUpstream(t *testing.T) {
	det := &fakeDetector{err: errors.New("throttled")}
	_, err := NewRekognitionRecognizer(det, catalog{}, nil).Recognize(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrUpstream)
}
