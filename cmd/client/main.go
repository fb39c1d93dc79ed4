package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/AleLoredo/TasksAPI/internal/client"
)

var (
	version   string
	buildDate string
)

// printResponse prints an API reply as indented JSON, prefixed by its status.
func printResponse(status int, body any) {
	fmt.Printf("[%d]\n", status)
	b, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		fmt.Println(body)
		return
	}
	fmt.Println(string(b))
}

// promptCredentials reads a username and password from the terminal.
func promptCredentials(scanner *bufio.Scanner) (string, string, bool) {
	fmt.Print("Usuario: ")
	if !scanner.Scan() {
		return "", "", false
	}
	usuario := strings.TrimSpace(scanner.Text())

	fmt.Print("Contraseña: ")
	if !scanner.Scan() {
		return "", "", false
	}
	contrasena := scanner.Text()

	return usuario, contrasena, true
}

// repl runs the interactive shell loop, accepting commands to manage tasks.
func repl(api *client.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("tareas> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register, login, logout, status, list, add, delete <id>, done <id>, undo <id>, exit")
		case "register":
			usuario, contrasena, ok := promptCredentials(scanner)
			if !ok {
				return
			}
			status, body, err := api.Register(usuario, contrasena)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "login":
			usuario, contrasena, ok := promptCredentials(scanner)
			if !ok {
				return
			}
			status, body, err := api.Login(usuario, contrasena, true)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "logout":
			status, body, err := api.Logout()
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "status":
			status, body, err := api.Status()
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "list":
			status, tasks, err := api.ListTasks()
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			if status != 200 {
				fmt.Printf("[%d] no autorizado o error\n", status)
				continue
			}
			if len(tasks) == 0 {
				fmt.Println("No tienes tareas.")
				continue
			}
			for _, t := range tasks {
				estado := "Pendiente"
				if t.Completed {
					estado = "Completada"
				}
				fmt.Printf("  ID: %d, Descripción: %q, Estado: %s\n", t.ID, t.Description, estado)
			}
		case "add":
			fmt.Print("Descripción de la tarea: ")
			if !scanner.Scan() {
				return
			}
			descripcion := strings.TrimSpace(scanner.Text())
			if descripcion == "" {
				fmt.Println("La descripción no puede estar vacía.")
				continue
			}
			status, body, err := api.AddTask(descripcion)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("ID inválido. Debe ser un número.")
				continue
			}
			status, body, err := api.DeleteTask(id)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "done", "undo":
			if len(args) < 2 {
				fmt.Printf("Usage: %s <id>\n", args[0])
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("ID inválido. Debe ser un número.")
				continue
			}
			status, body, err := api.SetTaskCompleted(id, args[0] == "done")
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printResponse(status, body)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("TasksAPI Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	api, err := client.New(baseURL)
	if err != nil {
		log.Fatal(err)
	}

	repl(api)
}
