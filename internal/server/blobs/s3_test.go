package blobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts   []*s3.PutObjectInput
	body   []byte
	putErr error
	getErr error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, _ := io.ReadAll(in.Body)
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Store_PutGet(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{}
	s := &S3Store{client: fake, bucket: "vault"}

	require.NoError(t, s.Put(ctx, "doc", []byte(`{"iv":"AA=="}`)))
	require.Len(t, fake.puts, 1)
	in := fake.puts[0]
	assert.Equal(t, "vault", aws.ToString(in.Bucket))
	assert.Equal(t, "blobs/doc", aws.ToString(in.Key))
	assert.Equal(t, "*", aws.ToString(in.IfNoneMatch))

	got, err := s.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"iv":"AA=="}`), got)
}

func TestS3Store_PutErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "precondition", err: &smithy.GenericAPIError{Code: "PreconditionFailed"}, want: common.ErrFileExists},
		{name: "conflict", err: &smithy.GenericAPIError{Code: "ConditionalRequestConflict"}, want: common.ErrFileExists},
		{name: "other api error", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: common.ErrUnavailable},
		{name: "network", err: errors.New("connection reset"), want: common.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &S3Store{client: &fakeS3{putErr: tt.err}, bucket: "vault"}
			err := s.Put(context.Background(), "doc", []byte("x"))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestS3Store_GetErrors(t *testing.T) {
	s := &S3Store{client: &fakeS3{getErr: &types.NoSuchKey{}}, bucket: "vault"}
	_, err := s.Get(context.Background(), "doc")
	require.ErrorIs(t, err, common.ErrFileNotFound)

	s = &S3Store{client: &fakeS3{getErr: errors.New("timeout")}, bucket: "vault"}
	_, err = s.Get(context.Background(), "doc")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestNewS3Store_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "eu-west-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("credentials not applied")
		}
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	s, err := NewS3Store(context.Background(), S3Config{
		Bucket: "vault", Region: "eu-west-1", BaseEndpoint: "http://127.0.0.1:9000", User: "u", Password: "p",
	})
	require.NoError(t, err)
	assert.Equal(t, "vault", s.bucket)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewS3Store(context.Background(), S3Config{})
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), DriverMemory, S3Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(context.Background(), "ftp", S3Config{})
	require.Error(t, err)
}
