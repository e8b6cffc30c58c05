package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// PhotoService プロフィール写真の保存サービスインターフェース。
// 保存先（ローカル / Cloudinary / S3）は設定で切り替える
type PhotoService interface {
	Upload(file multipart.File, originalName string) (string, error)
}

// NewPhotoService 設定に応じたPhotoServiceを作成
func NewPhotoService(cfg *config.Config) (PhotoService, error) {
	switch cfg.Storage.Type {
	case "cloudinary":
		return newCloudinaryPhotoService(cfg)
	case "s3":
		return newS3PhotoService(cfg)
	default:
		return &localPhotoService{cfg: cfg}, nil
	}
}

// uploadName タイムスタンプとランダム文字列からファイル名を生成
func uploadName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), utils.GenerateRandomString(8), ext)
}

// localPhotoService ローカルディスクに保存する実装
type localPhotoService struct {
	cfg *config.Config
}

// Upload 写真をアップロードディレクトリに保存してURLを返す
func (s *localPhotoService) Upload(file multipart.File, originalName string) (string, error) {
	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("アップロードディレクトリの作成に失敗しました: %v", err)
	}

	name := uploadName(originalName)
	dst, err := os.Create(filepath.Join(s.cfg.Storage.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("ファイルの作成に失敗しました: %v", err)
	}
	defer dst.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", fmt.Errorf("ファイルの読み込みに失敗しました: %v", err)
	}
	if _, err := dst.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("ファイルの保存に失敗しました: %v", err)
	}

	return s.cfg.Storage.BaseURL + "/" + name, nil
}

// cloudinaryPhotoService Cloudinaryに保存する実装
type cloudinaryPhotoService struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

func newCloudinaryPhotoService(cfg *config.Config) (PhotoService, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}
	return &cloudinaryPhotoService{cld: cld, cfg: cfg}, nil
}

// Upload 写真をCloudinaryにアップロードしてURLを返す
func (s *cloudinaryPhotoService) Upload(file multipart.File, originalName string) (string, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", fmt.Errorf("ファイルの読み込みに失敗しました: %v", err)
	}

	name := uploadName(originalName)
	result, err := s.cld.Upload.Upload(context.Background(), buf, uploader.UploadParams{
		Folder:       s.cfg.Cloudinary.Folder,
		PublicID:     strings.TrimSuffix(name, filepath.Ext(name)),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %v", err)
	}

	return result.SecureURL, nil
}

// s3PhotoService S3に保存する実装
type s3PhotoService struct {
	uploader *s3manager.Uploader
	cfg      *config.Config
}

func newS3PhotoService(cfg *config.Config) (PhotoService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
	})
	if err != nil {
		return nil, err
	}
	return &s3PhotoService{
		uploader: s3manager.NewUploader(sess),
		cfg:      cfg,
	}, nil
}

// Upload 写真をS3にアップロードしてURLを返す
func (s *s3PhotoService) Upload(file multipart.File, originalName string) (string, error) {
	name := uploadName(originalName)
	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(s.cfg.AWS.Bucket),
		Key:    aws.String("photos/" + name),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("S3へのアップロードに失敗しました: %v", err)
	}

	return result.Location, nil
}
