package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// mockListTablesClient serves canned pages keyed by ExclusiveStartTableName.
type mockListTablesClient struct {
	pages  map[string]*dynamodb.ListTablesOutput
	err    error
	starts []string
}

func (m *mockListTablesClient) ListTables(_ context.Context, params *dynamodb.ListTablesInput, _ ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	start := aws.ToString(params.ExclusiveStartTableName)
	m.starts = append(m.starts, start)
	if m.err != nil {
		return nil, m.err
	}
	page, ok := m.pages[start]
	if !ok {
		return &dynamodb.ListTablesOutput{}, nil
	}
	return page, nil
}

func TestListTableNames_SinglePage(t *testing.T) {
	client := &mockListTablesClient{
		pages: map[string]*dynamodb.ListTablesOutput{
			"": {TableNames: []string{"A", "B", "C"}},
		},
	}
	repo := NewDynamoDBRepository(client)

	names, err := repo.ListTableNames(context.Background())
	if err != nil {
		t.Fatalf("ListTableNames() returned unexpected error: %v", err)
	}
	if len(names) != 3 || names[0] != "A" || names[2] != "C" {
		t.Errorf("ListTableNames() = %v, want [A B C]", names)
	}
	if len(client.starts) != 1 {
		t.Errorf("ListTables() called %d times, want 1", len(client.starts))
	}
}

func TestListTableNames_FollowsPagination(t *testing.T) {
	client := &mockListTablesClient{
		pages: map[string]*dynamodb.ListTablesOutput{
			"":  {TableNames: []string{"A", "B"}, LastEvaluatedTableName: aws.String("B")},
			"B": {TableNames: []string{"C"}},
		},
	}
	repo := NewDynamoDBRepository(client)

	names, err := repo.ListTableNames(context.Background())
	if err != nil {
		t.Fatalf("ListTableNames() returned unexpected error: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("ListTableNames() returned %d names, want 3", len(names))
	}
	if len(client.starts) != 2 || client.starts[1] != "B" {
		t.Errorf("ListTables() starts = %v, want [\"\" \"B\"]", client.starts)
	}
}

func TestListTableNames_Empty(t *testing.T) {
	repo := NewDynamoDBRepository(&mockListTablesClient{})

	names, err := repo.ListTableNames(context.Background())
	if err != nil {
		t.Fatalf("ListTableNames() returned unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListTableNames() = %v, want empty", names)
	}
}

func TestListTableNames_Error(t *testing.T) {
	upstream := errors.New("ResourceNotFoundException")
	repo := NewDynamoDBRepository(&mockListTablesClient{err: upstream})

	names, err := repo.ListTableNames(context.Background())
	if !errors.Is(err, upstream) {
		t.Errorf("error = %v, should wrap %v", err, upstream)
	}
	if names != nil {
		t.Error("no names should be returned on error")
	}
}
