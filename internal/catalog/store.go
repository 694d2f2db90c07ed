package catalog

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/ErenSahind/qr-menu/internal/awsx"
)

// ErrSlugTaken indicates another branch already owns the requested slug.
var ErrSlugTaken = errors.New("branch slug already taken")

// Tables groups the DynamoDB table names the catalog store operates on.
type Tables struct {
	Branches   string
	Categories string
	Products   string
	Tables     string
}

// Store encapsulates catalog reads and the setup-wizard writes.
type Store struct {
	client  awsx.DynamoDBAPI
	tables  Tables
	nowFunc func() time.Time
}

// NewStore creates a catalog Store over the given tables.
func NewStore(client awsx.DynamoDBAPI, tables Tables) *Store {
	return &Store{
		client:  client,
		tables:  tables,
		nowFunc: time.Now,
	}
}

// GetBranchBySlug looks a branch up through the slug-index GSI.
// Returns (nil, nil) if no branch owns the slug.
func (s *Store) GetBranchBySlug(ctx context.Context, slug string) (*Branch, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tables.Branches,
		IndexName:              awsString("slug-index"),
		KeyConditionExpression: awsString("slug = :slug"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":slug": &types.AttributeValueMemberS{Value: slug},
		},
		Limit: awsInt32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query branch by slug: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var b Branch
	if err := attributevalue.UnmarshalMap(out.Items[0], &b); err != nil {
		return nil, fmt.Errorf("unmarshal branch: %w", err)
	}
	return &b, nil
}

// GetTableByCode resolves a scanned QR code to a table via the qr_code-index
// GSI. Returns (nil, nil) when the code is unknown.
func (s *Store) GetTableByCode(ctx context.Context, code string) (*Table, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tables.Tables,
		IndexName:              awsString("qr_code-index"),
		KeyConditionExpression: awsString("qr_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: awsInt32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query table by code: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var t Table
	if err := attributevalue.UnmarshalMap(out.Items[0], &t); err != nil {
		return nil, fmt.Errorf("unmarshal table: %w", err)
	}
	return &t, nil
}

// ListCategories returns the active categories of a branch ordered by sort_order.
func (s *Store) ListCategories(ctx context.Context, branchID string) ([]Category, error) {
	items, err := s.queryByBranch(ctx, s.tables.Categories, branchID)
	if err != nil {
		return nil, err
	}
	var cats []Category
	if err := attributevalue.UnmarshalListOfMaps(items, &cats); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	active := cats[:0]
	for _, c := range cats {
		if c.IsActive {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].SortOrder < active[j].SortOrder })
	return active, nil
}

// ListProducts returns the active products of a branch ordered by sort_order.
// Unavailable products are kept so the menu can render them greyed out.
func (s *Store) ListProducts(ctx context.Context, branchID string) ([]Product, error) {
	items, err := s.queryByBranch(ctx, s.tables.Products, branchID)
	if err != nil {
		return nil, err
	}
	var prods []Product
	if err := attributevalue.UnmarshalListOfMaps(items, &prods); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}
	active := prods[:0]
	for _, p := range prods {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].SortOrder < active[j].SortOrder })
	return active, nil
}

// GetProduct fetches one product by id. Returns (nil, nil) if not found.
func (s *Store) GetProduct(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tables.Products,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// CreateBranchWithTables runs the setup wizard: one branch plus tableCount
// tables written in a single transaction. Table names are "Masa 1..N" when
// useTableNumbers is set, otherwise just the short code. Returns the created
// branch and its tables.
func (s *Store) CreateBranchWithTables(ctx context.Context, ownerID, name, slug string, tableCount int, useTableNumbers bool) (*Branch, []Table, error) {
	existing, err := s.GetBranchBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrSlugTaken
	}

	now := s.nowFunc()
	branch := Branch{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Name:              name,
		Slug:              slug,
		Currency:          "TRY",
		IsOrderingEnabled: true,
		CreatedAt:         now,
	}
	branchItem, err := attributevalue.MarshalMap(branch)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal branch: %w", err)
	}

	transactItems := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           &s.tables.Branches,
				Item:                branchItem,
				ConditionExpression: awsString("attribute_not_exists(id)"),
			},
		},
	}

	tables := make([]Table, 0, tableCount)
	for i := 1; i <= tableCount; i++ {
		tbl := Table{
			ID:        uuid.NewString(),
			BranchID:  branch.ID,
			QRCode:    newTableCode(),
			CreatedAt: now,
		}
		if useTableNumbers {
			tbl.Name = fmt.Sprintf("Masa %d", i)
		} else {
			tbl.Name = tbl.QRCode
		}
		item, err := attributevalue.MarshalMap(tbl)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal table: %w", err)
		}
		transactItems = append(transactItems, types.TransactWriteItem{
			Put: &types.Put{
				TableName: &s.tables.Tables,
				Item:      item,
			},
		})
		tables = append(tables, tbl)
	}

	_, err = s.client.TransactWriteItems(ctx, &dyn.TransactWriteItemsInput{
		TransactItems: transactItems,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return nil, nil, fmt.Errorf("transaction canceled (likely branch id collision): %w", err)
		}
		return nil, nil, fmt.Errorf("transact write: %w", err)
	}
	return &branch, tables, nil
}

func (s *Store) queryByBranch(ctx context.Context, table, branchID string) ([]map[string]types.AttributeValue, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &table,
		IndexName:              awsString("branch_id-index"),
		KeyConditionExpression: awsString("branch_id = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: branchID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query by branch: %w", err)
	}
	return out.Items, nil
}

// tableCodeAlphabet omits look-alike characters so printed codes stay readable.
const tableCodeAlphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// newTableCode generates an 8-char short code for a printed QR sticker.
func newTableCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to uuid anyway
		return uuid.NewString()[:8]
	}
	for i, b := range buf {
		buf[i] = tableCodeAlphabet[int(b)%len(tableCodeAlphabet)]
	}
	return string(buf)
}

func awsString(s string) *string { return &s }
func awsInt32(i int32) *int32    { return &i }
