package deps

import (
	"context"
	"fmt"
	"proposalai/internal/config"
	"proposalai/internal/core/domain/account"
	dl "proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/core/domain/pricing"
	drl "proposalai/internal/core/domain/rate_limiter"
	duow "proposalai/internal/core/domain/unit_of_work"
	dbaccount "proposalai/internal/db/account"
	dbpasswordreset "proposalai/internal/db/password_reset"
	uow "proposalai/internal/db/unit_of_work"
	"proposalai/internal/implementations/email"
	"proposalai/internal/implementations/logging"
	passwordhasher "proposalai/internal/implementations/password_hasher"
	ratelimiter "proposalai/internal/implementations/rate_limiter"
	resettokengenerator "proposalai/internal/implementations/reset_token_generator"
	"proposalai/internal/implementations/session"
	"proposalai/internal/rabbitmq"
	passwordresetemail "proposalai/internal/rabbitmq/publishers/password_reset_email"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork           duow.UnitOfWork
	AccountRepository    account.Repository
	ResetTokenRepository passwordreset.Repository

	RateLimiter drl.RateLimiter

	PasswordHasher      account.PasswordHasher
	SessionTokenIssuer  account.SessionTokenIssuer
	SessionTokenParser  account.SessionTokenParser
	ResetTokenGenerator passwordreset.TokenGenerator
	DefaultTaxRate      pricing.BasisPoints

	// PasswordResetSender queues reset emails for cmd/mailer.
	PasswordResetSender passwordreset.Sender
	// EmailSender talks to SES directly. Only cmd/mailer uses it.
	EmailSender *email.EmailSender
}

// InitDeps builds everything the API server needs. The returned function
// releases all of it and must be called on shutdown.
func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.AccountRepository = dbaccount.NewPgxRepository(deps.DB)
	deps.ResetTokenRepository = dbpasswordreset.NewPgxRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	sessions := session.NewJWT(deps.Config.Secret, deps.Config.SessionValidDuration, deps.Now)
	deps.SessionTokenIssuer = sessions
	deps.SessionTokenParser = sessions
	deps.ResetTokenGenerator = resettokengenerator.NewGenerator()
	deps.DefaultTaxRate = pricing.BasisPoints(deps.Config.DefaultTaxRateBasisPoints)

	closePasswordResetPublisher := deps.initPasswordResetPublisher()
	deps.EmailSender = deps.newEmailSender()

	flushSentry := deps.initSentry()

	return deps, shutdownAll(
		closePasswordResetPublisher,
		closeRabbitmqConn,
		closeRedisClient,
		closePgxPool,
		closeLogger,
		flushSentry,
	)
}

// InitMailerDeps builds the subset of dependencies cmd/mailer needs: no
// database, no Redis, and SES instead of the queue publisher.
func InitMailerDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.EmailSender = deps.newEmailSender()

	flushSentry := deps.initSentry()

	return deps, shutdownAll(closeRabbitmqConn, closeLogger, flushSentry)
}

func shutdownAll(closeFuncs ...func()) func() {
	return func() {
		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				defer wg.Done()
				closeFunc()
			}()
		}
		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not parse Redis URL.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

// OpenPasswordResetQueue opens a channel with the password reset queue declared
// on it.
func (deps *Deps) OpenPasswordResetQueue() *rabbitmq.Channel {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareDurableQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not declare RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}
	return rabbitmqChannel
}

func (deps *Deps) initPasswordResetPublisher() func() {
	rabbitmqChannel := deps.OpenPasswordResetQueue()

	// The default exchange routes by queue name.
	deps.PasswordResetSender = passwordresetemail.New(
		deps.Logger,
		rabbitmqChannel,
		"",
		deps.Config.RabbitmqPasswordResetQueue,
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset publisher shut down.")
	}
}

func (deps *Deps) newEmailSender() *email.EmailSender {
	return email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.AwsEmailPasswordResetBaseUrl,
	)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
