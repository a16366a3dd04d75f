package deps

import (
	"authsvc/internal/config"
	dl "authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	dbfile "authsvc/internal/db/file"
	dbuser "authsvc/internal/db/user"
	"authsvc/internal/implementations/logging"
	passwordhasher "authsvc/internal/implementations/password_hasher"
	resettoken "authsvc/internal/implementations/reset_token"
	resettokensender "authsvc/internal/implementations/reset_token_sender"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	UserRepository      user.UserRepository
	PasswordHasher      user.PasswordHasher
	ResetTokenGenerator user.ResetTokenGenerator
	ResetTokenSender    user.ResetTokenSender
}

// InitDeps constructs every collaborator exactly once; the returned
// function closes them on shutdown.
func InitDeps() (*Deps, func()) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewZapLogger()

	deps := &Deps{
		Config: cfg,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}

	if cfg.PostgresqlURL != "" {
		db, err := pgxpool.Connect(context.Background(), cfg.PostgresqlURL)
		if err != nil {
			panic("Could not connect to the database.")
		}
		deps.DB = db
		deps.UserRepository = dbuser.NewPgxRepository(db)
	} else {
		deps.UserRepository = dbfile.NewFileRepository(cfg.UsersFilePath)
	}

	deps.PasswordHasher = passwordhasher.NewBcrypt(cfg.Secret, cfg.BcryptHasherCost)
	deps.ResetTokenGenerator = resettoken.NewUUID()
	deps.ResetTokenSender = initResetTokenSender(deps)

	return deps, func() {
		if deps.DB != nil {
			deps.DB.Close()
		}
		logger.Sync()
	}
}

func initResetTokenSender(deps *Deps) user.ResetTokenSender {
	cfg := deps.Config
	if cfg.PasswordResetEmailFrom == "" || cfg.PasswordResetEmailTemplate == "" {
		return resettokensender.NewLogSender(deps.Logger, cfg.PasswordResetBaseURL)
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
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
	return resettokensender.NewSESSender(
		awsCfg,
		cfg.PasswordResetEmailFrom,
		cfg.PasswordResetEmailTemplate,
		cfg.PasswordResetBaseURL,
	)
}
