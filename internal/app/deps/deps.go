package deps

import (
	"context"
	"fmt"
	"sync"
	"time"

	"linkea/internal/config"
	dl "linkea/internal/core/domain/logging"
	duow "linkea/internal/core/domain/unit_of_work"
	"linkea/internal/core/domain/user"
	uow "linkea/internal/db/unit_of_work"
	dbuser "linkea/internal/db/user"
	"linkea/internal/implementations/credential"
	"linkea/internal/implementations/email"
	imagestore "linkea/internal/implementations/image_store"
	"linkea/internal/implementations/logging"
	passwordhasher "linkea/internal/implementations/password_hasher"
	passwordresetter "linkea/internal/implementations/password_resetter"
	profilecache "linkea/internal/implementations/profile_cache"
	"linkea/internal/implementations/smtp"
	"linkea/internal/rabbitmq"
	mailqueue "linkea/internal/rabbitmq/publishers/mail_queue"

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

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	CredentialIssuer            user.CredentialIssuer
	CredentialVerifier          user.CredentialVerifier

	// MailTransport delivers messages directly; MailSender is what services
	// use and enqueues them instead when the mail queue is enabled.
	MailTransport user.MailSender
	MailSender    user.MailSender

	ImageStore   user.ImageStore
	ProfileCache user.ProfileCache
}

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
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = passwordresetter.NewRandom(deps.Config.PasswordResetValidDuration)
	jwt := credential.NewJWT(deps.Config.Secret, deps.Config.SessionCredentialTTL, deps.Now)
	deps.CredentialIssuer = jwt
	deps.CredentialVerifier = jwt

	deps.MailTransport = deps.initMailTransport()
	closeMailQueue := deps.initMailSender()

	deps.ImageStore = imagestore.NewS3(
		deps.AwsConfig,
		deps.Config.S3Bucket,
		deps.Config.S3Endpoint,
		deps.Config.ImagePublicURL(),
	)
	deps.ProfileCache = profilecache.NewRedis(deps.Redis, deps.Logger, deps.Config.ProfileCacheTTL)

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeMailQueue,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
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
	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	if deps.Config.AwsAccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		))
	}
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
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
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
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
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is not configured.")
		return func() {}
	}
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

func (deps *Deps) initMailTransport() user.MailSender {
	switch deps.Config.MailTransport {
	case config.MailTransportSMTP:
		return smtp.NewEmailSender(
			deps.Config.SmtpHost,
			deps.Config.SmtpPort,
			deps.Config.SmtpUsername,
			deps.Config.SmtpPassword,
			deps.Config.MailSender,
		)
	default:
		return email.NewEmailSender(deps.AwsConfig, deps.Config.MailSender)
	}
}

func (deps *Deps) initMailSender() func() {
	if !deps.Config.MailQueueEnabled {
		deps.MailSender = deps.MailTransport
		return func() {}
	}

	rabbitmqChannel, err := deps.MailQueueChannel()
	if err != nil {
		panic(err)
	}
	deps.MailSender = mailqueue.NewRabbitMQ(deps.Logger, rabbitmqChannel, deps.Config.MailQueue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down mail queue publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Mail queue publisher shut down.")
	}
}

// MailQueueChannel opens a RabbitMQ channel with the mail queue declared on it.
func (deps *Deps) MailQueueChannel() (*rabbitmq.Channel, error) {
	if deps.Rabbitmq == nil {
		return nil, fmt.Errorf("RabbitMQ connection is not initialized")
	}
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		return nil, err
	}
	if err := rabbitmqChannel.DeclareDurableQueue(deps.Config.MailQueue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("queue", deps.Config.MailQueue),
			dl.Entry("err", err),
		)
		rabbitmqChannel.Close()
		return nil, err
	}
	return rabbitmqChannel, nil
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
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
