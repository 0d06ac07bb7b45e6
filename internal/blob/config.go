package blob

import "errors"

const DefaultRegion = "us-east-1"

// S3Config holds the connection settings for an S3 compatible store. The
// bucket is not part of it: callers pass the bucket on every request.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// HasStaticCredentials reports whether explicit keys were configured. When
// they were not, the AWS default credential chain is used.
func (c *S3Config) HasStaticCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

func (c *S3Config) Validate() error {
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New("s3: access_key and secret_key must be set together")
	}
	return nil
}
