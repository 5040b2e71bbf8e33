package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/scadhub/portal/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	studentSvc  *student.Service
	migrateFunc func(ctx context.Context) error
	validate    *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply the record store schema (postgres backend only)")
	fmt.Println("  addstudent -email EMAIL -name NAME [-major MAJOR] [-semester N] - create a student profile")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentEmail := addStudentCmd.String("email", "", "The student's email address.")
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentMajor := addStudentCmd.String("major", "", "The student's major.")
	addStudentSemester := addStudentCmd.Int("semester", 0, "The student's current semester.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentEmail == "" || *addStudentName == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentEmail, *addStudentName, *addStudentMajor, *addStudentSemester)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) addStudent(email, name, major string, semester int) error {
	np := student.NewProfile{
		Email:    email,
		Name:     name,
		Major:    major,
		Semester: semester,
	}
	if err := np.Validate(cli.validate); err != nil {
		return err
	}

	prof, err := cli.studentSvc.Create(context.Background(), np)
	if err != nil {
		return err
	}
	fmt.Printf("created profile for %s\n", prof.Email)
	return nil
}
