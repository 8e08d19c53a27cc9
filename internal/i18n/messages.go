package i18n

var messages = map[string]map[string]string{
	LocaleEnglish: {
		"error.bad_request":         "invalid request",
		"error.unauthorized":        "authentication required",
		"error.forbidden":           "permission denied",
		"error.not_found":           "resource not found",
		"error.internal":            "internal error",
		"error.too_many_requests":   "too many requests",
		"error.auth_header_missing": "authorization header missing",
		"error.auth_header_invalid": "authorization header invalid",
		"error.token_invalid":       "token invalid or expired",
		"error.token_revoked":       "token has been revoked",
		"error.jwt_secret_missing":  "authentication is not configured",

		"error.email_invalid":        "email address is invalid",
		"error.email_exists":         "email address already registered",
		"error.login_invalid":        "email or password incorrect",
		"error.login_rate_limited":   "too many failed attempts, try again later",
		"error.user_disabled":        "account is disabled",
		"error.user_not_found":       "user not found",
		"error.user_fetch_failed":    "failed to load user",
		"error.user_update_failed":   "failed to update user",
		"error.user_id_invalid":      "user id invalid",
		"error.user_id_type_invalid": "user id type invalid",
		"error.login_failed":         "login failed",
		"error.register_failed":      "registration failed",
		"error.password_weak":        "password does not meet the policy",
		"error.password_old_invalid": "current password incorrect",
		"error.captcha_invalid":      "captcha incorrect",
		"error.captcha_failed":       "captcha generation failed",
		"error.save_failed":          "save failed",

		"error.offer_not_found":      "offer not found",
		"error.offer_invalid":        "offer data invalid",
		"error.offer_conflict":       "offer state changed, reload and retry",
		"error.offer_not_live":       "offer is not currently redeemable",
		"error.offer_fetch_failed":   "failed to load offer",
		"error.offer_create_failed":  "failed to create offer",
		"error.offer_update_failed":  "failed to update offer",
		"error.offer_delete_failed":  "failed to delete offer",
		"error.quota_config_invalid": "tier caps exceed the total cap",

		"error.redemption_not_found":      "redemption not found",
		"error.redemption_invalid":        "redemption data invalid",
		"error.redemption_fetch_failed":   "failed to load redemption",
		"error.redemption_create_failed":  "failed to create redemption",
		"error.redemption_already_settled": "redemption already settled",
		"error.quota_exceeded":            "offer quota exhausted",

		"error.assignment_invalid":     "assignment data invalid",
		"error.assignment_sync_failed": "failed to sync assignments",
		"error.role_conflict":          "user role conflicts with the requested link",

		"error.provider_not_found": "provider not found",
		"error.provider_invalid":   "provider data invalid",

		"error.reference_not_found": "reference entry not found",
		"error.reference_invalid":   "reference data invalid",
		"error.reference_in_use":    "reference entry is still in use",

		"error.notification_not_found": "notification not found",

		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
	},
	LocaleArabic: {
		"error.bad_request":         "طلب غير صالح",
		"error.unauthorized":        "يجب تسجيل الدخول",
		"error.forbidden":           "ليست لديك صلاحية",
		"error.not_found":           "العنصر غير موجود",
		"error.internal":            "خطأ داخلي",
		"error.too_many_requests":   "عدد كبير من الطلبات",
		"error.auth_header_missing": "ترويسة المصادقة مفقودة",
		"error.auth_header_invalid": "ترويسة المصادقة غير صالحة",
		"error.token_invalid":       "رمز الدخول غير صالح أو منتهي",
		"error.token_revoked":       "تم إلغاء رمز الدخول",
		"error.jwt_secret_missing":  "المصادقة غير مهيأة",

		"error.email_invalid":        "البريد الإلكتروني غير صالح",
		"error.email_exists":         "البريد الإلكتروني مسجل مسبقا",
		"error.login_invalid":        "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		"error.login_rate_limited":   "محاولات فاشلة كثيرة، حاول لاحقا",
		"error.user_disabled":        "الحساب معطل",
		"error.user_not_found":       "المستخدم غير موجود",
		"error.user_fetch_failed":    "تعذر تحميل المستخدم",
		"error.user_update_failed":   "تعذر تحديث المستخدم",
		"error.user_id_invalid":      "معرف المستخدم غير صالح",
		"error.user_id_type_invalid": "نوع معرف المستخدم غير صالح",
		"error.login_failed":         "فشل تسجيل الدخول",
		"error.register_failed":      "فشل إنشاء الحساب",
		"error.password_weak":        "كلمة المرور لا تحقق الشروط",
		"error.password_old_invalid": "كلمة المرور الحالية غير صحيحة",
		"error.captcha_invalid":      "رمز التحقق غير صحيح",
		"error.captcha_failed":       "تعذر إنشاء رمز التحقق",
		"error.save_failed":          "فشل الحفظ",

		"error.offer_not_found":      "العرض غير موجود",
		"error.offer_invalid":        "بيانات العرض غير صالحة",
		"error.offer_conflict":       "تغيرت حالة العرض، أعد المحاولة",
		"error.offer_not_live":       "العرض غير متاح للاستخدام حاليا",
		"error.offer_fetch_failed":   "تعذر تحميل العرض",
		"error.offer_create_failed":  "تعذر إنشاء العرض",
		"error.offer_update_failed":  "تعذر تحديث العرض",
		"error.offer_delete_failed":  "تعذر حذف العرض",
		"error.quota_config_invalid": "حصص الفئات تتجاوز الحد الكلي",

		"error.redemption_not_found":      "عملية الاستخدام غير موجودة",
		"error.redemption_invalid":        "بيانات الاستخدام غير صالحة",
		"error.redemption_fetch_failed":   "تعذر تحميل عملية الاستخدام",
		"error.redemption_create_failed":  "تعذر إنشاء عملية الاستخدام",
		"error.redemption_already_settled": "تمت تسوية العملية مسبقا",
		"error.quota_exceeded":            "نفدت حصة العرض",

		"error.assignment_invalid":     "بيانات الربط غير صالحة",
		"error.assignment_sync_failed": "تعذرت مزامنة الروابط",
		"error.role_conflict":          "دور المستخدم يتعارض مع الربط المطلوب",

		"error.provider_not_found": "التاجر غير موجود",
		"error.provider_invalid":   "بيانات التاجر غير صالحة",

		"error.reference_not_found": "العنصر المرجعي غير موجود",
		"error.reference_invalid":   "البيانات المرجعية غير صالحة",
		"error.reference_in_use":    "العنصر المرجعي ما يزال مستخدما",

		"error.notification_not_found": "الإشعار غير موجود",

		"error.rate_limited":           "طلبات كثيرة، أعد المحاولة بعد %d ثانية",
		"error.login_too_many":         "محاولات دخول كثيرة، أعد المحاولة بعد %d ثانية",
		"error.rate_limit_unavailable": "محدد الطلبات غير متاح",
	},
}
