// Package repo provides the DynamoDB implementation of the TableStore port.
package repo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBRepository lists tables from DynamoDB.
type DynamoDBRepository struct {
	client dynamodb.ListTablesAPIClient
}

// NewDynamoDBRepository creates a new DynamoDBRepository.
func NewDynamoDBRepository(client dynamodb.ListTablesAPIClient) *DynamoDBRepository {
	return &DynamoDBRepository{client: client}
}

// ListTableNames returns every table name, following LastEvaluatedTableName
// until the listing is exhausted.
func (r *DynamoDBRepository) ListTableNames(ctx context.Context) ([]string, error) {
	paginator := dynamodb.NewListTablesPaginator(r.client, &dynamodb.ListTablesInput{})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tables: %w", err)
		}
		names = append(names, page.TableNames...)
	}

	return names, nil
}
