package lib

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

var snsClient *sns.Client

func getSNSClient() *sns.Client {
	if snsClient != nil {
		return snsClient
	}
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Error loading default config: %s\n", err.Error())
		return nil
	}
	snsClient = sns.NewFromConfig(cfg)
	return snsClient
}

// SendSMS publishes through SNS when SMS_GATEWAY=sns, otherwise it only
// logs the message. Always best-effort.
func SendSMS(phone string, message string) error {
	if os.Getenv("SMS_GATEWAY") != "sns" {
		log.Printf("[MOCK SMS to %s]: %s\n", phone, message)
		return nil
	}
	client := getSNSClient()
	if client == nil {
		log.Printf("[MOCK SMS to %s]: %s\n", phone, message)
		return nil
	}
	_, err := client.Publish(context.TODO(), &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	if err != nil {
		log.Printf("Error publishing SMS to %s: %s\n", phone, err.Error())
		return err
	}
	return nil
}
