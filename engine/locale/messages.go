// Package locale holds the single message-template table for every response
// string the engine produces. Handlers resolve a (MessageID, locale) pair
// exactly once per response instead of branching per language.
package locale

import (
	"fmt"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

type MessageID string

const (
	MsgGreeting       MessageID = "general.greeting"
	MsgGeneralApology MessageID = "general.apology"

	MsgInventoryApology    MessageID = "inventory.apology"
	MsgStockStatus         MessageID = "inventory.stock_status"
	MsgStockOrderNow       MessageID = "inventory.order_now"
	MsgStockOrderLine      MessageID = "inventory.order_line"
	MsgForecastHeader      MessageID = "inventory.forecast_header"
	MsgForecastFestival    MessageID = "inventory.forecast_festival"
	MsgSeasonWinter        MessageID = "inventory.season_winter"
	MsgSeasonSummer        MessageID = "inventory.season_summer"
	MsgSeasonMonsoon       MessageID = "inventory.season_monsoon"
	MsgSeasonFestive       MessageID = "inventory.season_festive"
	MsgSupplierList        MessageID = "inventory.suppliers"
	MsgExpiryNone          MessageID = "inventory.expiry_none"
	MsgExpiryHeader        MessageID = "inventory.expiry_header"
	MsgExpiryLine          MessageID = "inventory.expiry_line"
	MsgExpiredLine         MessageID = "inventory.expired_line"
	MsgInventoryHelp       MessageID = "inventory.help"

	MsgCustomerApology  MessageID = "customer.apology"
	MsgCustomerSummary  MessageID = "customer.summary"
	MsgCustomerTopLine  MessageID = "customer.top_line"
	MsgCustomerNone     MessageID = "customer.none"
	MsgLoyaltyStatus    MessageID = "customer.loyalty_status"
	MsgPromoHeader      MessageID = "customer.promo_header"
	MsgPromoChoose      MessageID = "customer.promo_choose"
	MsgPromoWinter      MessageID = "customer.promo_winter"
	MsgPromoSummer      MessageID = "customer.promo_summer"
	MsgPromoFestival    MessageID = "customer.promo_festival"
	MsgPromoLoyalty     MessageID = "customer.promo_loyalty"
	MsgCampaignHeader   MessageID = "customer.campaign_header"
	MsgCampaignMorning  MessageID = "customer.campaign_morning"
	MsgCampaignArrival  MessageID = "customer.campaign_arrival"
	MsgCampaignReminder MessageID = "customer.campaign_reminder"
	MsgCustomerHelp     MessageID = "customer.help"

	MsgFinanceApology     MessageID = "finance.apology"
	MsgSalesReport        MessageID = "finance.sales_report"
	MsgTrendUp            MessageID = "finance.trend_up"
	MsgTrendDown          MessageID = "finance.trend_down"
	MsgTrendFlat          MessageID = "finance.trend_flat"
	MsgProfitReport       MessageID = "finance.profit_report"
	MsgProfitNone         MessageID = "finance.profit_none"
	MsgProfitLow          MessageID = "finance.profit_low"
	MsgProfitHealthy      MessageID = "finance.profit_healthy"
	MsgExpenseReport      MessageID = "finance.expense_report"
	MsgExpenseLine        MessageID = "finance.expense_line"
	MsgExpenseNone        MessageID = "finance.expense_none"
	MsgCashflowReport     MessageID = "finance.cashflow_report"
	MsgCashflowPositive   MessageID = "finance.cashflow_positive"
	MsgCashflowNegative   MessageID = "finance.cashflow_negative"
	MsgCashflowBalanced   MessageID = "finance.cashflow_balanced"
	MsgTaxReport          MessageID = "finance.tax_report"
	MsgFinanceHelp        MessageID = "finance.help"

	MsgSummaryUnavailable MessageID = "insights.summary_unavailable"

	MsgRecStartRecords    MessageID = "rec.start_records"
	MsgRecCollectData     MessageID = "rec.collect_customer_data"
	MsgRecWinBack         MessageID = "rec.win_back"
	MsgRecSeasonalPromo   MessageID = "rec.seasonal_promo"
	MsgRecRaiseMargin     MessageID = "rec.raise_margin"
	MsgRecReinvest        MessageID = "rec.reinvest"
	MsgRecCutExpenses     MessageID = "rec.cut_expenses"
	MsgRecReviewCosts     MessageID = "rec.review_costs"
	MsgRecUpsell          MessageID = "rec.upsell"
	MsgRecKeepRecords     MessageID = "rec.keep_records"
	MsgRecRestockLow      MessageID = "rec.restock_low"
	MsgRecClearExpiring   MessageID = "rec.clear_expiring"
	MsgRecReviewWeekly    MessageID = "rec.review_weekly"
	MsgRecPlanSeasonal    MessageID = "rec.plan_seasonal"
)

// catalog is populated for Hindi and English; the other supported locales
// resolve through the fallback chain (see Resolve). Shipping machine-guessed
// Telugu/Tamil/Bengali strings would be worse than an honest fallback.
var catalog = map[MessageID]map[contractx.Locale]string{
	MsgGreeting: {
		"hi": "नमस्ते! मैं आपका AI व्यापार साथी हूं। आप मुझसे स्टॉक, ग्राहक या बिक्री के बारे में पूछ सकते हैं।",
		"en": "Hello! I'm your AI business partner. You can ask me about stock, customers, or sales.",
	},
	MsgGeneralApology: {
		"hi": "मुझे समझने में कठिनाई हो रही है, कृपया फिर से कोशिश करें।",
		"en": "I'm having trouble understanding, please try again.",
	},

	MsgInventoryApology: {
		"hi": "स्टॉक की जानकारी लेने में समस्या हो रही है",
		"en": "Having trouble with stock information",
	},
	MsgStockStatus: {
		"hi": "📊 आपका स्टॉक स्थिति:\n\nकुल आइटम: %d\nकम स्टॉक वाले आइटम: %d\n",
		"en": "📊 Your Stock Status:\n\nTotal Items: %d\nLow Stock Items: %d\n",
	},
	MsgStockOrderNow: {
		"hi": "तुरंत ऑर्डर करें:\n",
		"en": "Order Immediately:\n",
	},
	MsgStockOrderLine: {
		"hi": "• %s: %d बचे हैं\n",
		"en": "• %s: %d remaining\n",
	},
	MsgForecastHeader: {
		"hi": "🔮 मांग पूर्वानुमान:\n\n",
		"en": "🔮 Demand Forecast:\n\n",
	},
	MsgForecastFestival: {
		"hi": "आगामी %s के लिए %s की मांग बढ़ेगी\n",
		"en": "For upcoming %s, demand for %s will increase\n",
	},
	MsgSeasonWinter: {
		"hi": "सर्दी का मौसम: गर्म कपड़े और हीटर की मांग बढ़ेगी",
		"en": "Winter season: Demand for warm clothes and heaters will increase",
	},
	MsgSeasonSummer: {
		"hi": "गर्मी का मौसम: ठंडे पेय और पंखे की मांग बढ़ेगी",
		"en": "Summer season: Demand for cold drinks and fans will increase",
	},
	MsgSeasonMonsoon: {
		"hi": "बारिश का मौसम: छाते और रेन गियर की मांग बढ़ेगी",
		"en": "Monsoon season: Demand for umbrellas and rain gear will increase",
	},
	MsgSeasonFestive: {
		"hi": "त्योहारी मौसम: मिठाई और सजावट का सामान चाहिए होगा",
		"en": "Festival season: Sweets and decorations will be in demand",
	},
	MsgSupplierList: {
		"hi": "🏭 सुझाए गए सप्लायर:\n\n• राज ट्रेडर्स - 📞 9876543210\n  कम कीमत, अच्छी गुणवत्ता\n\n• शर्मा होलसेल - 📞 9765432109\n  तेज़ डिलीवरी, 2 दिन\n\n• गुप्ता स्टोर्स - 📞 9654321098\n  बल्क ऑर्डर में छूट\n",
		"en": "🏭 Recommended Suppliers:\n\n• Raj Traders - 📞 9876543210\n  Low prices, good quality\n\n• Sharma Wholesale - 📞 9765432109\n  Fast delivery, 2 days\n\n• Gupta Stores - 📞 9654321098\n  Bulk order discounts\n",
	},
	MsgExpiryNone: {
		"hi": "कोई चीज़ जल्दी एक्सपायर नहीं हो रही! 👍",
		"en": "Nothing expiring soon! 👍",
	},
	MsgExpiryHeader: {
		"hi": "⚠️ जल्दी एक्सपायर होने वाली चीज़ें:\n\n",
		"en": "⚠️ Items Expiring Soon:\n\n",
	},
	MsgExpiryLine: {
		"hi": "• %s: %d दिन बचे\n",
		"en": "• %s: %d days left\n",
	},
	MsgExpiredLine: {
		"hi": "• %s: %d दिन पहले एक्सपायर हो गया\n",
		"en": "• %s: expired %d days ago\n",
	},
	MsgInventoryHelp: {
		"hi": "मैं आपके स्टॉक, मांग पूर्वानुमान, और सप्लायर की मदद कर सकता हूं। कुछ खास जानना चाहते हैं?",
		"en": "I can help with your stock, demand forecasting, and suppliers. What would you like to know?",
	},

	MsgCustomerApology: {
		"hi": "ग्राहक की जानकारी लेने में समस्या हो रही है",
		"en": "Having trouble with customer information",
	},
	MsgCustomerSummary: {
		"hi": "👥 आपके ग्राहक की जानकारी:\n\nकुल ग्राहक: %d\nनियमित ग्राहक: %d\nप्रीमियम ग्राहक: %d\nकभी-कभी आने वाले: %d\n",
		"en": "👥 Your Customer Information:\n\nTotal Customers: %d\nRegular Customers: %d\nPremium Customers: %d\nOccasional Customers: %d\n",
	},
	MsgCustomerTopLine: {
		"hi": "सबसे अच्छे ग्राहक: %s (₹%.2f)\n",
		"en": "Top Customer: %s (₹%.2f)\n",
	},
	MsgCustomerNone: {
		"hi": "अभी तक कोई ग्राहक डेटा उपलब्ध नहीं है",
		"en": "No customer data available yet",
	},
	MsgLoyaltyStatus: {
		"hi": "🏆 लॉयल्टी प्रोग्राम की स्थिति:\n\nकुल पॉइंट्स दिए गए: %d\nसक्रिय सदस्य: %d\n\nरिवॉर्ड्स:\n• 100 पॉइंट्स = ₹10 छूट\n• 500 पॉइंट्स = ₹60 छूट\n• 1000 पॉइंट्स = ₹150 छूट\n",
		"en": "🏆 Loyalty Program Status:\n\nTotal Points Issued: %d\nActive Members: %d\n\nReward Structure:\n• 100 Points = ₹10 Discount\n• 500 Points = ₹60 Discount\n• 1000 Points = ₹150 Discount\n",
	},
	MsgPromoHeader: {
		"hi": "🎉 सुझाए गए प्रमोशन:\n\n",
		"en": "🎉 Suggested Promotions:\n\n",
	},
	MsgPromoChoose: {
		"hi": "कौन सा प्रमोशन भेजना चाहते हैं?",
		"en": "Which promotion would you like to send?",
	},
	MsgPromoWinter: {
		"hi": "❄️ सर्दी का स्पेशल: सभी गर्म कपड़ों पर 25% छूट! आज से 3 दिन तक।",
		"en": "❄️ Winter Special: 25% off on all warm clothes! For 3 days only.",
	},
	MsgPromoSummer: {
		"hi": "☀️ गर्मी से पहले तैयारी: सभी कूलर और फैन पर 20% छूट!",
		"en": "☀️ Summer Prep: 20% off on all coolers and fans!",
	},
	MsgPromoFestival: {
		"hi": "🎉 त्योहारी धमाका: सभी मिठाइयों पर 30% छूट! जल्दी करें!",
		"en": "🎉 Festival Blast: 30% off on all sweets! Hurry up!",
	},
	MsgPromoLoyalty: {
		"hi": "💎 वफादार ग्राहकों के लिए: आपके लिए खास 15% एक्स्ट्रा छूट!",
		"en": "💎 For Loyal Customers: Special 15% extra discount for you!",
	},
	MsgCampaignHeader: {
		"hi": "📱 व्हाट्सऐप मार्केटिंग आइडिया:\n\n",
		"en": "📱 WhatsApp Marketing Ideas:\n\n",
	},
	MsgCampaignMorning: {
		"hi": "🌅 सुप्रभात! आज क्या चाहिए? हमारे पास सब कुछ है। 📞 कॉल करें या आइए।",
		"en": "🌅 Good Morning! What do you need today? We have everything. 📞 Call or visit us.",
	},
	MsgCampaignArrival: {
		"hi": "🆕 नया माल आया है! फ्रेश स्टॉक देखने आइए। पहले आओ, पहले पाओ!",
		"en": "🆕 New stock arrived! Come see fresh inventory. First come, first served!",
	},
	MsgCampaignReminder: {
		"hi": "📞 आपको कुछ चाहिए था? हम यहां हैं आपकी सेवा में। दुकान खुली है!",
		"en": "📞 Did you need something? We're here to serve you. Shop is open!",
	},
	MsgCustomerHelp: {
		"hi": "मैं ग्राहकों के साथ जुड़ने, प्रमोशन बनाने, और लॉयल्टी प्रोग्राम की मदद कर सकता हूं। कुछ खास जानना चाहते हैं?",
		"en": "I can help with customer engagement, creating promotions, and loyalty programs. What would you like to know?",
	},

	MsgFinanceApology: {
		"hi": "वित्तीय जानकारी लेने में समस्या हो रही है",
		"en": "Having trouble with financial information",
	},
	MsgSalesReport: {
		"hi": "📈 आपकी बिक्री की रिपोर्ट:\n\nआज की बिक्री: ₹%.2f\nकल की बिक्री: ₹%.2f\nइस हफ्ते: ₹%.2f\nइस महीने: ₹%.2f\n\n",
		"en": "📈 Your Sales Report:\n\nToday's Sales: ₹%.2f\nYesterday's Sales: ₹%.2f\nThis Week: ₹%.2f\nThis Month: ₹%.2f\n\n",
	},
	MsgTrendUp: {
		"hi": "📊 ट्रेंड: आज की बिक्री कल से बेहतर है! 👍",
		"en": "📊 Trend: Today's sales are better than yesterday! 👍",
	},
	MsgTrendDown: {
		"hi": "📊 ट्रेंड: आज की बिक्री कल से कम है। सुधार की जरूरत।",
		"en": "📊 Trend: Today's sales are lower than yesterday. Needs improvement.",
	},
	MsgTrendFlat: {
		"hi": "📊 ट्रेंड: आज की बिक्री कल के बराबर है।",
		"en": "📊 Trend: Today's sales equal to yesterday.",
	},
	MsgProfitReport: {
		"hi": "💰 लाभ विश्लेषण (पिछले 30 दिन):\n\nकुल बिक्री: ₹%.2f\nकुल लाभ: ₹%.2f\nऔसत लाभ मार्जिन: %.1f%%\n",
		"en": "💰 Profit Analysis (Last 30 days):\n\nTotal Revenue: ₹%.2f\nTotal Profit: ₹%.2f\nAverage Profit Margin: %.1f%%\n",
	},
	MsgProfitNone: {
		"hi": "अभी तक लाभ की जानकारी उपलब्ध नहीं है। अपनी लागत और बिक्री मूल्य जोड़ें।",
		"en": "Profit information not available yet. Add your cost and selling prices.",
	},
	MsgProfitLow: {
		"hi": "⚠️ सुझाव: लाभ मार्जिन कम है। कीमतें बढ़ाने या लागत कम करने पर विचार करें।",
		"en": "⚠️ Recommendation: Profit margin is low. Consider increasing prices or reducing costs.",
	},
	MsgProfitHealthy: {
		"hi": "✅ बहुत अच्छा! लाभ मार्जिन स्वस्थ है।",
		"en": "✅ Excellent! Profit margin is healthy.",
	},
	MsgExpenseReport: {
		"hi": "💸 खर्च विश्लेषण (पिछले 30 दिन):\n\nकुल खर्च: ₹%.2f\nदैनिक औसत खर्च: ₹%.2f\n\nखर्च की श्रेणियां:\n",
		"en": "💸 Expense Analysis (Last 30 days):\n\nTotal Expenses: ₹%.2f\nDaily Average Expense: ₹%.2f\n\nExpense Categories:\n",
	},
	MsgExpenseLine: {
		"hi": "• %s: ₹%.2f (%.1f%%)\n",
		"en": "• %s: ₹%.2f (%.1f%%)\n",
	},
	MsgExpenseNone: {
		"hi": "अभी तक कोई खर्च दर्ज नहीं है।",
		"en": "No expenses recorded yet.",
	},
	MsgCashflowReport: {
		"hi": "💰 नकदी प्रवाह रिपोर्ट (30 दिन):\n\nनकदी आना: ₹%.2f\nनकदी जाना: ₹%.2f\nशुद्ध नकदी प्रवाह: ₹%.2f\n\n",
		"en": "💰 Cash Flow Report (30 days):\n\nCash In: ₹%.2f\nCash Out: ₹%.2f\nNet Cash Flow: ₹%.2f\n\n",
	},
	MsgCashflowPositive: {
		"hi": "✅ अच्छा! आपका नकदी प्रवाह सकारात्मक है।",
		"en": "✅ Good! Your cash flow is positive.",
	},
	MsgCashflowNegative: {
		"hi": "⚠️ चेतावनी: नकदी प्रवाह नकारात्मक है। खर्च कम करें या बिक्री बढ़ाएं।",
		"en": "⚠️ Warning: Cash flow is negative. Reduce expenses or increase sales.",
	},
	MsgCashflowBalanced: {
		"hi": "📊 नकदी प्रवाह संतुलित है।",
		"en": "📊 Cash flow is balanced.",
	},
	MsgTaxReport: {
		"hi": "📋 कर की जानकारी (30 दिन):\n\nकुल बिक्री: ₹%.2f\nअनुमानित GST (%.0f%%): ₹%.2f\n\n💡 याद रखें:\n• महीने की 20 तारीख तक GST रिटर्न जमा करें\n• सभी बिल संभाल कर रखें\n• खरीदारी पर मिले GST का फायदा उठाएं\n",
		"en": "📋 Tax Information (30 days):\n\nTotal Sales: ₹%.2f\nEstimated GST (%.0f%%): ₹%.2f\n\n💡 Remember:\n• File GST returns by 20th of every month\n• Keep all bills safely\n• Claim input GST on purchases\n",
	},
	MsgFinanceHelp: {
		"hi": "मैं बिक्री, लाभ, खर्च, नकदी प्रवाह और कर की जानकारी दे सकता हूं। कुछ खास जानना चाहते हैं?",
		"en": "I can provide information about sales, profit, expenses, cash flow, and taxes. What would you like to know?",
	},

	MsgSummaryUnavailable: {
		"hi": "व्यापार की जानकारी उपलब्ध नहीं है",
		"en": "Business information not available",
	},

	MsgRecStartRecords: {
		"hi": "बेहतर वित्तीय ट्रैकिंग के लिए सभी बिक्री दर्ज करना शुरू करें",
		"en": "Start recording all sales transactions for better financial tracking",
	},
	MsgRecCollectData: {
		"hi": "ग्राहकों की पसंद जानने के लिए उनकी जानकारी इकट्ठा करना शुरू करें",
		"en": "Start collecting customer information to track their preferences",
	},
	MsgRecWinBack: {
		"hi": "निष्क्रिय ग्राहकों के लिए खास वापसी ऑफर बनाएं",
		"en": "Create special comeback offers for inactive customers",
	},
	MsgRecSeasonalPromo: {
		"hi": "जुड़ाव बढ़ाने के लिए मौसमी प्रमोशन चलाएं",
		"en": "Run seasonal promotions to increase engagement",
	},
	MsgRecRaiseMargin: {
		"hi": "लाभ मार्जिन सुधारने के लिए कीमतें बढ़ाने या लागत घटाने पर विचार करें",
		"en": "Consider increasing prices or reducing costs to improve profit margins",
	},
	MsgRecReinvest: {
		"hi": "शानदार लाभ मार्जिन! व्यापार बढ़ाने में फिर से निवेश करें",
		"en": "Excellent profit margins! Consider reinvesting in business growth",
	},
	MsgRecCutExpenses: {
		"hi": "नकदी प्रवाह सुधारने के लिए खर्च घटाएं और बिक्री बढ़ाएं",
		"en": "Focus on reducing expenses and increasing sales to improve cash flow",
	},
	MsgRecReviewCosts: {
		"hi": "आय की तुलना में खर्च ज्यादा है। लागत की समीक्षा करें",
		"en": "Expenses are high relative to revenue. Review and optimize costs",
	},
	MsgRecUpsell: {
		"hi": "अपसेलिंग से औसत बिक्री मूल्य बढ़ाने की कोशिश करें",
		"en": "Try to increase average transaction value through upselling",
	},
	MsgRecKeepRecords: {
		"hi": "सभी लेन-देन का विस्तृत रिकॉर्ड रखें",
		"en": "Maintain detailed records of all transactions",
	},
	MsgRecRestockLow: {
		"hi": "कम स्टॉक वाले आइटम तुरंत दोबारा मंगवाएं",
		"en": "Reorder low-stock items immediately",
	},
	MsgRecClearExpiring: {
		"hi": "जल्दी एक्सपायर होने वाले सामान पर छूट देकर निकालें",
		"en": "Discount items nearing expiry to clear them",
	},
	MsgRecReviewWeekly: {
		"hi": "हर हफ्ते वित्तीय प्रदर्शन की समीक्षा करें",
		"en": "Review financial performance weekly",
	},
	MsgRecPlanSeasonal: {
		"hi": "व्यापार में मौसमी बदलाव के लिए योजना बनाएं",
		"en": "Plan for seasonal variations in business",
	},
}

// Resolve returns the template for the locale, falling back to English and
// finally to the message id itself so a missing entry is visible, not fatal.
func Resolve(id MessageID, loc contractx.Locale) string {
	translations, ok := catalog[id]
	if !ok {
		return string(id)
	}
	if msg, ok := translations[loc.OrDefault()]; ok {
		return msg
	}
	if msg, ok := translations[contractx.LocaleEnglish]; ok {
		return msg
	}
	return string(id)
}

// Format resolves the template and applies fmt verbs in one step.
func Format(id MessageID, loc contractx.Locale, args ...any) string {
	return fmt.Sprintf(Resolve(id, loc), args...)
}
