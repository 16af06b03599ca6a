package ai

import (
	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

// Persona holds the tutor's prompt text and the canned replies used when
// the model cannot answer. Values come from a .properties file so the
// wording can change without a rebuild.
type Persona struct {
	Role        string
	Guidelines  string
	Fallback    string
	Unavailable string
	Unclear     string
	Refusal     string
	Apology     string
}

func DefaultPersona() Persona {
	return Persona{
		Role: "You are an AI SMS Learning Tutor for skilled artisans and workers in Nairobi, Kenya.",
		Guidelines: "- Help with work-related questions, business advice, and skill development\n" +
			"- Provide practical solutions for craftspeople, technicians, and small business owners\n" +
			"- Keep responses SHORT (under 160 characters for SMS)\n" +
			"- Be encouraging, supportive, and culturally aware\n" +
			"- Focus on actionable advice that works in Nairobi context\n" +
			"- Use simple, clear language",
		Fallback:    "Technical error. Please try again.",
		Unavailable: "Sorry, I'm currently unavailable. Please try again later.",
		Unclear:     "I'm having trouble understanding. Could you rephrase?",
		Refusal:     "I cannot respond to that type of request due to safety guidelines.",
		Apology:     "Sorry, I'm having technical difficulties. Please try again.",
	}
}

// LoadPersona reads the persona file, falling back to the defaults for
// missing keys or a missing file.
func LoadPersona(path string) Persona {
	def := DefaultPersona()

	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		logging.AppLogger.Warn("persona file not loaded, using defaults",
			zap.String("path", path), zap.Error(err))
		return def
	}

	return Persona{
		Role:        props.GetString("tutor_role", def.Role),
		Guidelines:  props.GetString("tutor_guidelines", def.Guidelines),
		Fallback:    props.GetString("reply_fallback", def.Fallback),
		Unavailable: props.GetString("reply_unavailable", def.Unavailable),
		Unclear:     props.GetString("reply_unclear", def.Unclear),
		Refusal:     props.GetString("reply_refusal", def.Refusal),
		Apology:     props.GetString("reply_apology", def.Apology),
	}
}
