package synthesizer

import "fmt"

const blogPrompt = "Write a high-quality, well-structured, informative blog post based on this video transcript. " +
	"The content should be engaging and not merely repeat the transcript.\n\n" +
	"Transcript:\n%s\n\nBlog Post:"

// buildPrompt embeds the transcript verbatim.
func buildPrompt(transcript string) string {
	return fmt.Sprintf(blogPrompt, transcript)
}
