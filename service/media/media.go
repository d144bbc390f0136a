// Package media emite links assinados para as imagens dos anúncios e
// documentos dos fornecedores guardados em OSS; o backend nunca serve os
// ficheiros diretamente.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"makini-agent-backend/config"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	osscred "github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/aliyun/credentials-go/credentials"
)

const (
	uploadLinkTTL   = 10 * time.Minute
	downloadLinkTTL = 15 * time.Minute
)

var client *oss.Client

// SignedLink descreve um pedido HTTP pré-assinado contra o bucket.
type SignedLink struct {
	URL        string    `json:"url"`
	Method     string    `json:"method"`
	Expiration time.Time `json:"expiration"`
}

func Enabled() bool {
	return client != nil
}

func Init() error {
	if config.Cfg.OSS.Bucket == "" {
		slog.Warn("OSS bucket not configured, media links disabled")
		return nil
	}

	provider, err := newCredentialsProvider()
	if err != nil {
		return fmt.Errorf("failed to create oss credentials provider: %v", err)
	}

	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(provider).
		WithRegion(config.Cfg.OSS.Region)

	client = oss.NewClient(cfg)
	return nil
}

// PresignUpload emite um link PUT de curta duração para o objeto dado.
func PresignUpload(ctx context.Context, objectName string) (*SignedLink, error) {
	result, err := client.Presign(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.Bucket),
		Key:    oss.Ptr(objectName),
	}, oss.PresignExpires(uploadLinkTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %v", objectName, err)
	}

	return &SignedLink{URL: result.URL, Method: result.Method, Expiration: result.Expiration}, nil
}

// PresignDownload emite um link GET de curta duração para o objeto dado.
func PresignDownload(ctx context.Context, objectName string) (*SignedLink, error) {
	result, err := client.Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.Bucket),
		Key:    oss.Ptr(objectName),
	}, oss.PresignExpires(downloadLinkTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign download for %s: %v", objectName, err)
	}

	return &SignedLink{URL: result.URL, Method: result.Method, Expiration: result.Expiration}, nil
}

// credentialsAdapter expõe as credenciais geridas pelo credentials-go
// (chave fixa ou STS com renovação) na interface do cliente OSS.
type credentialsAdapter struct {
	inner credentials.Credential
}

var _ osscred.CredentialsProvider = credentialsAdapter{}

func newCredentialsProvider() (osscred.CredentialsProvider, error) {
	credType := "access_key"
	if config.Cfg.OSS.SecurityToken != "" {
		credType = "sts"
	}

	inner, err := credentials.NewCredential(&credentials.Config{
		Type:            strPtr(credType),
		AccessKeyId:     strPtr(config.Cfg.OSS.AccessKeyID),
		AccessKeySecret: strPtr(config.Cfg.OSS.AccessKeySecret),
		SecurityToken:   strPtr(config.Cfg.OSS.SecurityToken),
	})
	if err != nil {
		return nil, err
	}

	return credentialsAdapter{inner: inner}, nil
}

func (a credentialsAdapter) GetCredentials(ctx context.Context) (osscred.Credentials, error) {
	model, err := a.inner.GetCredential()
	if err != nil {
		return osscred.Credentials{}, err
	}
	return osscred.Credentials{
		AccessKeyID:     deref(model.AccessKeyId),
		AccessKeySecret: deref(model.AccessKeySecret),
		SecurityToken:   deref(model.SecurityToken),
	}, nil
}

func strPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
