package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"
)

// mockGetApiKeysClient serves canned pages keyed by the request position.
type mockGetApiKeysClient struct {
	pages  map[string]*apigateway.GetApiKeysOutput
	err    error
	inputs []apigateway.GetApiKeysInput
}

func (m *mockGetApiKeysClient) GetApiKeys(_ context.Context, params *apigateway.GetApiKeysInput, _ ...func(*apigateway.Options)) (*apigateway.GetApiKeysOutput, error) {
	m.inputs = append(m.inputs, *params)
	if m.err != nil {
		return nil, m.err
	}
	page, ok := m.pages[aws.ToString(params.Position)]
	if !ok {
		return &apigateway.GetApiKeysOutput{}, nil
	}
	return page, nil
}

func apiKey(id, value string) types.ApiKey {
	return types.ApiKey{
		Id:      aws.String(id),
		Name:    aws.String("name-" + id),
		Value:   aws.String(value),
		Enabled: true,
	}
}

func TestListKeys_SinglePage(t *testing.T) {
	client := &mockGetApiKeysClient{
		pages: map[string]*apigateway.GetApiKeysOutput{
			"": {Items: []types.ApiKey{apiKey("a", "va"), apiKey("b", "vb")}},
		},
	}
	repo := NewAPIKeyRepository(client, 0)

	keys, err := repo.ListKeys(context.Background())
	if err != nil {
		t.Fatalf("ListKeys() returned unexpected error: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("ListKeys() returned %d keys, want 2", len(keys))
	}
	if keys[0].ID != "a" || keys[0].Value != "va" || keys[0].Name != "name-a" || !keys[0].Enabled {
		t.Errorf("keys[0] = %+v, unexpected mapping", keys[0])
	}
	if len(client.inputs) != 1 {
		t.Errorf("GetApiKeys() called %d times, want 1", len(client.inputs))
	}
}

func TestListKeys_RequestsValuesWithPageSize(t *testing.T) {
	client := &mockGetApiKeysClient{}
	repo := NewAPIKeyRepository(client, 0)

	if _, err := repo.ListKeys(context.Background()); err != nil {
		t.Fatalf("ListKeys() returned unexpected error: %v", err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("GetApiKeys() called %d times, want 1", len(client.inputs))
	}
	in := client.inputs[0]
	if !aws.ToBool(in.IncludeValues) {
		t.Error("IncludeValues should be true")
	}
	if aws.ToInt32(in.Limit) != MaxPageSize {
		t.Errorf("Limit = %d, want %d", aws.ToInt32(in.Limit), MaxPageSize)
	}
}

func TestListKeys_FollowsPagination(t *testing.T) {
	client := &mockGetApiKeysClient{
		pages: map[string]*apigateway.GetApiKeysOutput{
			"":   {Items: []types.ApiKey{apiKey("a", "va")}, Position: aws.String("p2")},
			"p2": {Items: []types.ApiKey{apiKey("b", "vb")}, Position: aws.String("p3")},
			"p3": {Items: []types.ApiKey{apiKey("c", "vc")}},
		},
	}
	repo := NewAPIKeyRepository(client, 1)

	keys, err := repo.ListKeys(context.Background())
	if err != nil {
		t.Fatalf("ListKeys() returned unexpected error: %v", err)
	}

	if len(keys) != 3 {
		t.Fatalf("ListKeys() returned %d keys, want 3", len(keys))
	}
	for i, want := range []string{"va", "vb", "vc"} {
		if keys[i].Value != want {
			t.Errorf("keys[%d].Value = %q, want %q", i, keys[i].Value, want)
		}
	}
	if len(client.inputs) != 3 {
		t.Errorf("GetApiKeys() called %d times, want 3", len(client.inputs))
	}
	if aws.ToInt32(client.inputs[0].Limit) != 1 {
		t.Errorf("Limit = %d, want 1", aws.ToInt32(client.inputs[0].Limit))
	}
}

func TestListKeys_Error(t *testing.T) {
	upstream := errors.New("throttled")
	client := &mockGetApiKeysClient{err: upstream}
	repo := NewAPIKeyRepository(client, 0)

	keys, err := repo.ListKeys(context.Background())
	if err == nil {
		t.Fatal("ListKeys() should return error when the client fails")
	}
	if !errors.Is(err, upstream) {
		t.Errorf("error = %v, should wrap %v", err, upstream)
	}
	if keys != nil {
		t.Error("no keys should be returned on error")
	}
}

func TestNewAPIKeyRepository_ClampsPageSize(t *testing.T) {
	tests := []struct {
		in   int
		want int32
	}{
		{-1, MaxPageSize},
		{0, MaxPageSize},
		{1, 1},
		{250, 250},
		{500, 500},
		{501, MaxPageSize},
	}

	for _, tc := range tests {
		repo := NewAPIKeyRepository(&mockGetApiKeysClient{}, tc.in)
		if repo.pageSize != tc.want {
			t.Errorf("NewAPIKeyRepository(_, %d).pageSize = %d, want %d", tc.in, repo.pageSize, tc.want)
		}
	}
}
