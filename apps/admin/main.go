package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/student"
	logsvc "github.com/scadhub/portal/services/logger"
	"github.com/scadhub/portal/storage/records"
	inmemstore "github.com/scadhub/portal/storage/store/inmem"
	pgstore "github.com/scadhub/portal/storage/store/postgres"
	redisstore "github.com/scadhub/portal/storage/store/redis"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up record store
	db, migrateFunc, closeStore, err := setUpStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up record store: %v", err), err)
	}
	defer closeStore()

	validate := validator.New()
	core.InitValidators(validate, newTranslator())

	// start CLI
	cli := commandLine{
		studentSvc:  student.NewService(records.NewStudentRepository(db), nil, logger),
		migrateFunc: migrateFunc,
		validate:    validate,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func setUpStore(conf *core.Config) (core.Store, func(ctx context.Context) error, func() error, error) {
	noMigrations := func(ctx context.Context) error {
		return fmt.Errorf("migrations do not apply to the %q backend", conf.Storage.Backend)
	}
	noop := func() error { return nil }

	switch conf.Storage.Backend {
	case "redis":
		db := redisstore.Open(conf.Storage.RedisAddr)
		return db, noMigrations, db.Close, nil
	case "postgres":
		db, err := pgstore.Open(conf.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, noop, err
		}
		return db, db.Migrate, db.Close, nil
	case "memory":
		return inmemstore.Open(), noMigrations, noop, nil
	}
	return nil, nil, noop, fmt.Errorf("unknown storage backend %q", conf.Storage.Backend)
}
