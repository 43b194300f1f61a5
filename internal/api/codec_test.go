package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestJSONCodec_WireFormat(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&UploadBlobRequest{
		ResourceName: "doc",
		BlobPayload:  BlobPayload{EncryptedData: []byte{1, 2}, EncryptedKey: []byte{3}, IV: []byte{4}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"resource_name":"doc","encrypted_data":"AQI=","encrypted_key":"Aw==","iv":"BA=="}`, string(b))

	var got UploadBlobRequest
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "doc", got.ResourceName)
	assert.Equal(t, []byte{1, 2}, got.EncryptedData)
}

func TestJSONCodec_EmptyMessage(t *testing.T) {
	var e Empty
	require.NoError(t, jsonCodec{}.Unmarshal(nil, &e))

	b, err := jsonCodec{}.Marshal(&Empty{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}
