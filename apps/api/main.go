package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/scadhub/portal/apps/api/echo"
	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/appointment"
	"github.com/scadhub/portal/core/internship"
	"github.com/scadhub/portal/core/notification"
	"github.com/scadhub/portal/core/student"
	emailsvc "github.com/scadhub/portal/services/email"
	logsvc "github.com/scadhub/portal/services/logger"
	"github.com/scadhub/portal/storage/records"
	inmemstore "github.com/scadhub/portal/storage/store/inmem"
	pgstore "github.com/scadhub/portal/storage/store/postgres"
	redisstore "github.com/scadhub/portal/storage/store/redis"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up record store
	db, closeStore, err := setUpStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up record store: %v", err), err)
	}
	defer func() {
		if err = closeStore(); err != nil {
			logger.Error(fmt.Sprintf("closing record store: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	notifSvc := notification.NewService(records.NewNotificationRepository(db), mailSvc)
	studentSvc := student.NewService(records.NewStudentRepository(db), nil, logger)
	internshipSvc := internship.NewService(records.NewInternshipRepository(db), studentSvc, notifSvc, logger)
	studentSvc.BindApplicationSource(internshipSvc)
	appointmentSvc := appointment.NewService(records.NewAppointmentRepository(db), studentSvc, notifSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger, conf)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			StudentSvc:      studentSvc,
			InternshipSvc:   internshipSvc,
			AppointmentSvc:  appointmentSvc,
			NotificationSvc: notifSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpStore(conf *core.Config) (core.Store, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Backend {
	case "redis":
		db := redisstore.Open(conf.Storage.RedisAddr)
		if err := db.Healthy(context.Background()); err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	case "postgres":
		db, err := pgstore.Open(conf.Storage.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		if err = db.Migrate(context.Background()); err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	case "memory":
		return inmemstore.Open(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", conf.Storage.Backend)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
