package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ErenSahind/qr-menu/internal/awsx"
)

// Profile is a registered restaurant owner or staff member.
// Keyed by email so registration can rely on a conditional put for uniqueness.
type Profile struct {
	Email        string    `dynamodbav:"email"` // PK
	ID           string    `dynamodbav:"id"`
	FullName     string    `dynamodbav:"full_name,omitempty"`
	Role         string    `dynamodbav:"role"` // owner | staff | admin
	PasswordHash string    `dynamodbav:"password_hash"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// ErrEmailInUse indicates a profile already exists for the email.
var ErrEmailInUse = errors.New("email already registered")

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login response can't be used to probe registered addresses.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Store encapsulates profile operations against DynamoDB.
type Store struct {
	client    awsx.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore returns a profiles Store.
func NewStore(client awsx.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Register creates a profile with a bcrypt-hashed password.
// Returns ErrEmailInUse when the email already has a profile.
func (s *Store) Register(ctx context.Context, email, password, fullName string) (*Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := Profile{
		Email:        email,
		ID:           uuid.NewString(),
		FullName:     fullName,
		Role:         "owner",
		PasswordHash: string(hash),
		CreatedAt:    s.nowFunc(),
	}
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(email)"),
	})
	if err != nil {
		var sc smithy.APIError
		if errors.As(err, &sc) && sc.ErrorCode() == "ConditionalCheckFailedException" {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("put profile: %w", err)
	}
	return &p, nil
}

// Authenticate verifies the password for email and returns the profile.
// Returns ErrInvalidCredentials on unknown email or wrong password.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*Profile, error) {
	p, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// Get fetches a profile by email. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, email string) (*Profile, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Profile
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

func awsString(s string) *string { return &s }
