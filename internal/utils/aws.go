package utils

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// AWSClient loads the pipeline's AWS configuration from the environment.
func AWSClient() *aws.Config {
	profileName, ok := os.LookupEnv("AWS_PROFILE")
	if !ok {
		profileName = "default"
	}
	log.Println("Using AWS profile:", profileName)
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("unable to load AWS configuration, %v", err)
	}
	if cfg.Region == "" {
		log.Fatalf("AWS region is not set")
	}
	log.Println("Using AWS region:", cfg.Region)
	return &cfg
}

// AssumedClientConfig builds a regional AWS configuration from temporary
// credentials obtained through sts:AssumeRole.
func AssumedClientConfig(creds aws.Credentials, region string) aws.Config {
	return aws.Config{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID,
			creds.SecretAccessKey,
			creds.SessionToken,
		),
	}
}
