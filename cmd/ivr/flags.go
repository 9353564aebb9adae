package main

import (
	"flag"
	"os"
)

var flagRunAddr string
var flagLogLevel string
var flagRegistryAddr string
var flagFlow string
var flagVoice string
var flagPublicURL string

func parseFlags() {
	flag.StringVar(&flagRunAddr, "a", ":8080", "address and port")
	flag.StringVar(&flagLogLevel, "l", "debug", "log level")
	flag.StringVar(&flagRegistryAddr, "r", "", "patient registry base URL (local stub when empty)")
	flag.StringVar(&flagFlow, "f", "intake", "dialogue flow: intake or voicemail")
	flag.StringVar(&flagVoice, "v", "Polly.Joanna", "voice profile for spoken prompts")
	flag.StringVar(&flagPublicURL, "p", "", "public base URL override (forwarded headers when empty)")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		flagRunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		flagLogLevel = envLogLevel
	}

	if envRegistryAddr := os.Getenv("REGISTRY_ADDR"); envRegistryAddr != "" {
		flagRegistryAddr = envRegistryAddr
	}

	if envFlow := os.Getenv("IVR_FLOW"); envFlow != "" {
		flagFlow = envFlow
	}

	if envVoice := os.Getenv("IVR_VOICE"); envVoice != "" {
		flagVoice = envVoice
	}

	if envPublicURL := os.Getenv("PUBLIC_URL"); envPublicURL != "" {
		flagPublicURL = envPublicURL
	}
}
