// Package prompt builds the LLM prompts for layer searches, synthesis,
// and query suggestions.
package prompt

import (
	"fmt"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// layerGuidance holds the per-layer search instructions embedded into the
// layer prompt: what to look for and which textual patterns to match.
var layerGuidance = map[domain.Layer]struct {
	searchType string
	lookFor    string
	patterns   string
}{
	domain.LayerBooking: {
		searchType: "booking_search",
		lookFor: `- Booking dates and availability
- Room types and pricing
- Booking status
- Guest information
- Special requests`,
		patterns: `- Room numbers (101, 102, A1, B2, etc.)
- Date patterns (YYYY-MM-DD, DD/MM/YYYY)
- Status patterns (confirmed, pending, cancelled)
- Price patterns (THB, USD, etc.)`,
	},
	domain.LayerFinancial: {
		searchType: "financial_search",
		lookFor: `- Revenue and expenses
- Invoice numbers and dates
- Payment methods
- Financial reports
- Budget information
- Cost centers`,
		patterns: `- Invoice numbers (INV-, Receipt-, #)
- Amount patterns (numbers with currency symbols)
- Date patterns for financial periods
- Department codes
- Budget line items`,
	},
	domain.LayerGuest: {
		searchType: "guest_search",
		lookFor: `- Guest names and contact details
- Booking history
- Preferences and special needs
- Loyalty program status
- Feedback and complaints
- Contact information`,
		patterns: `- Guest IDs (GUEST-, CUST-)
- Phone numbers (Thai: 0xxx, international: +xx)
- Email patterns
- Membership tiers
- Stay patterns`,
	},
	domain.LayerStaff: {
		searchType: "staff_search",
		lookFor: `- Staff names and positions
- Work schedules
- Department assignments
- Contact information
- Performance records
- Training certifications
- Emergency contacts`,
		patterns: `- Employee IDs (EMP-, STAFF-)
- Department codes (FRONT, HK, MGMT)
- Position titles
- Shift patterns
- Badge numbers`,
	},
	domain.LayerPolicies: {
		searchType: "policy_search",
		lookFor: `- Operating procedures
- Safety protocols
- Service standards
- Emergency procedures
- Company policies
- Regulatory compliance
- Training materials`,
		patterns: `- Policy numbers (POL-, SOP-)
- Procedure keywords (check-in, checkout, emergency)
- Regulation references
- Safety guidelines
- Quality standards`,
	},
}

const layerTemplate = `You are a hotel information specialist with deep domain knowledge.

Your task is to search through available hotel data and provide comprehensive results.

Query: search for %s information related to: %q
Search Type: %s

Look for:
%s

Search patterns:
%s

Instructions:
1. Analyze the query for key information needs
2. Look for relevant patterns and data structures
3. Extract specific, actionable information
4. Provide confidence scores for each finding
5. Suggest related information that might be helpful

Response Format:
{
    "status": "success|partial|not_found",
    "results": [
        {
            "category": "main_category",
            "subcategory": "specific_subcategory",
            "data": "specific_information",
            "confidence": 0.0-1.0,
            "source": "data_source_type",
            "relevance_score": 0.0-1.0,
            "additional_context": "related_info"
        }
    ],
    "summary": "brief_overview",
    "total_matches": number,
    "search_metadata": {
        "query_analysis": "query_breakdown",
        "search_strategy": "method_used",
        "processing_time": "duration"
    }
}

Respond with JSON only. Be thorough but focused on providing actionable hotel management data.`

// ForLayer builds the executor prompt for one search layer.
func ForLayer(layer domain.Layer, query string) string {
	g := layerGuidance[layer]
	return fmt.Sprintf(layerTemplate, layer, query, g.searchType, g.lookFor, g.patterns)
}

const synthesisTemplate = `You are a hotel data analyst. Based on the following search results,
provide a comprehensive analysis for the query: %q

Search Results:
%s

Provide:
1. Main findings
2. Specific data points
3. Related information
4. Actionable insights
5. Sources confidence scores

Format as detailed JSON response.`

// Synthesis builds the cross-layer synthesis prompt over the serialized
// per-layer results.
func Synthesis(query, serializedResults string) string {
	return fmt.Sprintf(synthesisTemplate, query, serializedResults)
}

const suggestionsTemplate = `Based on this hotel management query: %q

Suggest 5 relevant search queries that would help find comprehensive information.
Each suggestion should be specific and actionable.

Format as JSON array:
{
    "suggestions": [
        "suggestion_1",
        "suggestion_2",
        "suggestion_3",
        "suggestion_4",
        "suggestion_5"
    ]
}`

// Suggestions builds the search-suggestion prompt.
func Suggestions(query string) string {
	return fmt.Sprintf(suggestionsTemplate, query)
}
