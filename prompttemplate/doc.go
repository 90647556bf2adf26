// Package prompttemplate discovers prompt templates under ~/.prompts
// and materializes them with the user's trailing context.
package prompttemplate
