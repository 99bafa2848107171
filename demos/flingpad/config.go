package main

import (
	"bytes"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

// config holds the tunables read from flingpad.toml in the working
// directory. Delete the file to get a fresh default copy on the next run.
type config struct {
	Threshold   float64 // movement in pixels that confirms a drag
	Axis        string  // "both", "horizontal" or "vertical"
	FlingScale  float64 // pointer velocity to puck velocity multiplier
	Friction    float64 // per-frame velocity retention while coasting
	Restitution float64 // energy kept when bouncing off a wall
	AttractSecs int     // idle seconds before the attract script starts
}

const configFile = "flingpad.toml"

func initializeConfigIfNot() {
	conf := config{
		Threshold:   1,
		Axis:        "both",
		FlingScale:  1,
		Friction:    0.97,
		Restitution: 0.78,
		AttractSecs: 8,
	}
	ok, err := exists(configFile)
	if err != nil {
		log.Fatalf("Couldn't check if config file exists: %v\n", err)
	}
	if !ok {
		log.Println("Writing default config to", configFile)
		writeConfig(&conf)
	}
}

func readConfig() *config {
	config := config{}
	if _, err := toml.DecodeFile(configFile, &config); err != nil {
		log.Fatalf("Couldn't read config file: %v\n", err)
	}
	return &config
}

func writeConfig(conf *config) {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(&conf); err != nil {
		log.Fatalf("Couldn't encode config: %v\n", err)
	}
	if err := os.WriteFile(configFile, buffer.Bytes(), 0644); err != nil {
		log.Fatalf("Couldn't write config file: %v\n", err)
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
