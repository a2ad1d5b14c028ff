package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"proposalai/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const usage = `usage: aws <command> [flags]

commands:
  create-template   create the password reset email template
  update-template   replace the password reset email template
  delete-template   delete the password reset email template
  send-test         send the password reset email template to -to
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadAws()
	exitOnError(err)
	svc := newClient(cfg)
	ctx := context.Background()

	switch os.Args[1] {
	case "create-template":
		_, err = svc.CreateTemplate(ctx, &ses.CreateTemplateInput{
			Template: passwordResetTemplate(cfg.AwsEmailPasswordResetTemplate),
		})
	case "update-template":
		_, err = svc.UpdateTemplate(ctx, &ses.UpdateTemplateInput{
			Template: passwordResetTemplate(cfg.AwsEmailPasswordResetTemplate),
		})
	case "delete-template":
		_, err = svc.DeleteTemplate(ctx, &ses.DeleteTemplateInput{
			TemplateName: aws.String(cfg.AwsEmailPasswordResetTemplate),
		})
	case "send-test":
		flags := flag.NewFlagSet("send-test", flag.ExitOnError)
		to := flags.String("to", "", "recipient address")
		flags.Parse(os.Args[2:])
		if *to == "" {
			exitOnError(fmt.Errorf("-to is required"))
		}
		_, err = svc.SendTemplatedEmail(ctx, &ses.SendTemplatedEmailInput{
			Source: aws.String(cfg.AwsEmailSender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{*to},
			},
			Template:     aws.String(cfg.AwsEmailPasswordResetTemplate),
			TemplateData: aws.String(testTemplateData),
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	exitOnError(err)

	fmt.Println("Success.")
}

func newClient(cfg *config.AwsConfig) *ses.Client {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	exitOnError(err)
	return ses.NewFromConfig(awsCfg)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
