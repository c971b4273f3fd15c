package mocks

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// StoredObject is an object captured by MockObjectStorage
type StoredObject struct {
	Key         string
	ContentType string
	Body        []byte
}

// MockObjectStorage is a mock S3 client. Uploaded objects are recorded in
// Objects so tests can inspect them.
type MockObjectStorage struct {
	mock.Mock
	Objects []StoredObject
}

func (m *MockObjectStorage) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Key))
	if err := args.Error(0); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.Objects = append(m.Objects, StoredObject{
		Key:         aws.ToString(params.Key),
		ContentType: aws.ToString(params.ContentType),
		Body:        body,
	})
	return &s3.PutObjectOutput{}, nil
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Key))
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return &s3.DeleteObjectOutput{}, nil
}
