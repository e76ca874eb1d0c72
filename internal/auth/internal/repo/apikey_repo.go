// Package repo provides the API Gateway implementation of the KeySource port.
package repo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"

	"github.com/SebastienMelki/tablegate/internal/auth/internal/domain"
)

// MaxPageSize is the largest page GetApiKeys accepts.
const MaxPageSize = 500

// APIKeyRepository lists API keys from the API Gateway control plane.
type APIKeyRepository struct {
	client   apigateway.GetApiKeysAPIClient
	pageSize int32
}

// NewAPIKeyRepository creates a new APIKeyRepository. pageSize is clamped to
// [1, MaxPageSize]; zero or negative selects MaxPageSize.
func NewAPIKeyRepository(client apigateway.GetApiKeysAPIClient, pageSize int) *APIKeyRepository {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &APIKeyRepository{
		client:   client,
		pageSize: int32(pageSize),
	}
}

// ListKeys returns every API key with its value, following pagination until
// the service reports no further position.
func (r *APIKeyRepository) ListKeys(ctx context.Context) ([]domain.APIKey, error) {
	paginator := apigateway.NewGetApiKeysPaginator(r.client, &apigateway.GetApiKeysInput{
		Limit:         aws.Int32(r.pageSize),
		IncludeValues: aws.Bool(true),
	})

	var keys []domain.APIKey
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get api keys: %w", err)
		}

		for _, item := range page.Items {
			keys = append(keys, domain.APIKey{
				ID:      aws.ToString(item.Id),
				Name:    aws.ToString(item.Name),
				Value:   aws.ToString(item.Value),
				Enabled: item.Enabled,
			})
		}
	}

	return keys, nil
}
