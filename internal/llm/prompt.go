package llm

import "strings"

// AdvisorRefusal is the sentence the advisor model returns for off-topic
// queries. It is generated by the model, not enforced server-side.
const AdvisorRefusal = "This query is not related to finance. Please ask questions about financial investments or planning."

// BuildAdvisorPrompt composes the financial-planner prompt around a user query.
func BuildAdvisorPrompt(userQuery string) string {
	parts := []string{
		"You are an experienced financial planner. Your task is to provide clear and comprehensive advice on financial investments.",
		"Only answer queries strictly related to finance, investments, or financial planning. If the query is unrelated, respond with:",
		"'" + AdvisorRefusal + "'",
		"",
		"Query: " + strings.TrimSpace(userQuery),
		"",
		"Provide actionable steps, potential risks, and benefits if applicable.",
		"",
		"IMPORTANT: Format your response in plain text only. Do not use markdown.",
	}
	return strings.Join(parts, "\n")
}

// BuildAnalysisPrompt embeds extracted document text into the numbered
// instruction set for the document model. The output contract (strict JSON or
// the non-financial sentinel) is validated by the caller, not assumed.
func BuildAnalysisPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Consider yourself as an experienced financial professional with expertise in investments, banking, and financial instruments.\n")
	b.WriteString("Analyze the following document text carefully:\n\n")
	b.WriteString(text)
	b.WriteString("\n\n### Instructions:\n")
	b.WriteString("1. **Determine the Type of Document** - Identify if it is related to investments, banking, taxation, financial agreements, etc.\n")
	b.WriteString("2. **Provide a Full Explanation** - Explain what the document is about and its significance.\n")
	b.WriteString("3. **Extract Key Details** - Identify any critical financial details present in the document.\n")
	b.WriteString("4. **Explain Calculations** - If there are any financial formulas or calculations, perform the calculations and show the results.\n")
	b.WriteString("5. **Insights** - Provide any additional insights or important warnings based on the document content.\n")
	b.WriteString("6. **Restriction** - If the document is NOT related to finance, investments, or banking, respond with: '" + NotFinancialResponse + "'\n")
	b.WriteString("7. **Output Format:** Respond with ONLY a JSON object, no surrounding prose:\n")
	b.WriteString("{\n")
	b.WriteString("\"document_type\": \"Type of document\",\n")
	b.WriteString("\"explanation\": \"Full explanation of the document\",\n")
	b.WriteString("\"key_details\": [\"Detail 1\", \"Detail 2\", ...],\n")
	b.WriteString("\"calculations\": [\"Calculations based on the information present.\"],\n")
	b.WriteString("\"insights\": \"Additional useful insights from the document\"\n")
	b.WriteString("}")
	return b.String()
}
