package storage

import (
	"io"
	"net/http"

	"gallery/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	bucket   string
	s3Client *s3.S3
}

func NewS3Storage() StorageAPI {
	awsConfig := aws.Config{
		Region:      aws.String(config.S3_REGION),
		Credentials: credentials.NewStaticCredentials(config.S3_ACCESS_KEY, config.S3_SECRET_KEY, ""),
	}
	if config.S3_ENDPOINT != "" {
		awsConfig.Endpoint = aws.String(config.S3_ENDPOINT)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return &S3Storage{
		bucket:   config.S3_BUCKET,
		s3Client: s3.New(session.Must(session.NewSession(&awsConfig))),
	}
}

func (s *S3Storage) Save(path, contentType string, reader io.Reader) (int64, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.bucket,
		Key:         aws.String(path),
		ContentType: &contentType,
		Body:        reader,
	})
	// The uploader does not report a byte count; callers only check the error.
	return 0, err
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(path),
	})
	return err
}

func (s *S3Storage) PublicURL(path string) string {
	if config.S3_ENDPOINT != "" {
		return config.S3_ENDPOINT + "/" + s.bucket + "/" + path
	}
	return "https://" + s.bucket + ".s3." + config.S3_REGION + ".amazonaws.com/" + path
}

func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	http.Redirect(writer, request, s.PublicURL(path), http.StatusFound)
}
